package models

import "time"

const (
	ImportStatusSuccess = "success"
	ImportStatusFailed  = "failed"

	// ImportLogISBNLength is the stored width of ImportLog.ISBN.
	ImportLogISBNLength = 20
)

// ImportLog records one Open Library import attempt.
type ImportLog struct {
	ID           uint      `gorm:"primaryKey" json:"id" example:"1"`
	ISBN         string    `gorm:"column:isbn;size:20;index" json:"isbn" example:"9780261103344"`
	Status       string    `gorm:"index" json:"status" example:"success"`
	BookID       *uint     `json:"book_id,omitempty"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	ImportedAt   time.Time `gorm:"index" json:"imported_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ImportLog) TableName() string {
	return "import_logs"
}
