package models

import (
	"fmt"
	"time"
)

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"not null;size:100" json:"first_name" validate:"required,max=100"`
	LastName    string     `gorm:"not null;size:100;index" json:"last_name" validate:"required,max=100"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	DateOfDeath *time.Time `gorm:"type:date" json:"date_of_death"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

// String renders "last_name, first_name".
func (a Author) String() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}
