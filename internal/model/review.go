package model

import "time"

// Review is a scored text review of a title. A user may review a given
// title once; the composite unique index backs that invariant so
// concurrent duplicate submissions hit the constraint, not a
// check-then-insert race.
type Review struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TitleID  uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Title    *Title    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Author   *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"size:500;not null"`
	Score    int       `json:"score" gorm:"not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	AuthorUsername string `json:"author" gorm:"-"`
}
