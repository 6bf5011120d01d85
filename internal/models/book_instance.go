package models

import (
	"fmt"
	"time"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/slug"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanStatus string

const (
	StatusMaintenance LoanStatus = "maintenance"
	StatusOnLoan      LoanStatus = "on-loan"
	StatusAvailable   LoanStatus = "available"
	StatusReserved    LoanStatus = "reserved"
)

// LoanStatuses lists every status in display order. Any status may follow any other.
var LoanStatuses = []LoanStatus{StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved}

func (s LoanStatus) Valid() bool {
	for _, known := range LoanStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s LoanStatus) Label() string {
	switch s {
	case StatusMaintenance:
		return "Maintenance"
	case StatusOnLoan:
		return "On loan"
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	}
	return string(s)
}

// BookInstance is one loanable copy of a Book.
type BookInstance struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookID    uint       `gorm:"not null;index" json:"book_id" validate:"required"`
	Book      *Book      `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"book,omitempty"`
	Imprint   string     `gorm:"not null;size:200" json:"imprint" validate:"required,max=200"`
	DueBack   *time.Time `gorm:"type:date;index" json:"due_back"`
	Slug      string     `gorm:"size:250;index" json:"slug" validate:"omitempty,max=250"`
	Status    LoanStatus `gorm:"size:20;not null;default:maintenance;index" json:"status" validate:"omitempty,loan_status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (BookInstance) TableName() string {
	return "book_instances"
}

func (bi *BookInstance) BeforeCreate(tx *gorm.DB) (err error) {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	if bi.Status == "" {
		bi.Status = StatusMaintenance
	}
	return
}

// String renders "{id} ({book title})". The Book must be loaded.
func (bi BookInstance) String() string {
	return fmt.Sprintf("%s (%s)", bi.ID, bi.Book.Title)
}

// DeriveSlug fills an empty slug from the book title. It runs once, when the
// instance is first persisted.
func (bi *BookInstance) DeriveSlug(title string) {
	if bi.Slug == "" {
		bi.Slug = slug.From(title)
	}
}

// KeepSlug carries a previously stored slug over to an update. A populated
// slug never changes; an empty one may be filled in.
func (bi *BookInstance) KeepSlug(stored string) error {
	if stored == "" {
		return nil
	}
	if bi.Slug != "" && bi.Slug != stored {
		return apperr.Validation("slug cannot be changed once set", apperr.FieldError{
			Field:   "slug",
			Message: "slug is immutable",
		})
	}
	bi.Slug = stored
	return nil
}
