package models

import "time"

type Tag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	// Posts is the back-set of posts referencing this tag. It is only loaded
	// to clean up associations before the tag is deleted.
	Posts []Post `json:"-" gorm:"many2many:post_tags;"`
}
