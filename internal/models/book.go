package models

import "time"

type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id" example:"1"`
	Title      string    `gorm:"not null;size:200;index" json:"title" example:"The Hobbit" validate:"required,max=200"`
	Summary    string    `gorm:"type:text;not null" json:"summary" validate:"required,max=1000"`
	ISBN       string    `gorm:"column:isbn;not null;size:13" json:"isbn" example:"9780261103344" validate:"required,max=13"`
	CoverURL   string    `gorm:"size:500" json:"cover_url,omitempty" validate:"max=500"`
	AuthorID   *uint     `gorm:"index" json:"author_id"`
	Author     *Author   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author,omitempty"`
	LanguageID *uint     `gorm:"index" json:"language_id"`
	Language   *Language `gorm:"foreignKey:LanguageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"language,omitempty"`
	Genres     []Genre   `gorm:"many2many:book_genres;constraint:OnDelete:CASCADE;" json:"genres"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (b Book) String() string {
	return b.Title
}

// GenreIDs returns the ids of the loaded genre set.
func (b Book) GenreIDs() []uint {
	ids := make([]uint, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}
