package model

// Title is a rated work (book, film, album).
// Rating is computed from review scores, never stored; it stays nil for
// titles without reviews.
type Title struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:256;not null;uniqueIndex:idx_titles_year_name"`
	Year        int       `json:"year" gorm:"not null;uniqueIndex:idx_titles_year_name"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE"`
	Rating      *float64  `json:"rating" gorm:"-"`
}
