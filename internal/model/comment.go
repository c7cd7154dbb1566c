package model

import "time"

// Comment is a reply attached to a review.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ReviewID uint      `json:"-" gorm:"not null;index"`
	Review   *Review   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint      `json:"-" gorm:"not null"`
	Author   *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"size:300;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	AuthorUsername string `json:"author" gorm:"-"`
}
