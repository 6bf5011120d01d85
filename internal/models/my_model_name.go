package models

import "time"

// MyModelName is the demo entity shipped with the admin console.
type MyModelName struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MyFieldName string    `gorm:"not null;size:100" json:"my_field_name" validate:"required,max=100"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MyModelName) TableName() string {
	return "my_model_names"
}

func (m MyModelName) String() string {
	return m.MyFieldName
}
