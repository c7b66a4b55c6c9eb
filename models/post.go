package models

import "time"

type Post struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Author    string    `json:"author" gorm:"size:255;not null;index"`
	Tags      []Tag     `json:"tags" gorm:"many2many:post_tags;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether a tag with the given name is in the post's tag-set.
func (p *Post) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// AddTag appends tag unless a tag with the same name is already attached.
// It reports whether the tag-set changed.
func (p *Post) AddTag(tag Tag) bool {
	if p.HasTag(tag.Name) {
		return false
	}
	p.Tags = append(p.Tags, tag)
	return true
}

// RemoveTag drops the tag with the given name. It reports whether the tag-set changed.
func (p *Post) RemoveTag(name string) bool {
	for i, t := range p.Tags {
		if t.Name == name {
			p.Tags = append(p.Tags[:i], p.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// SameTags compares tag-sets by name, ignoring order.
func (p *Post) SameTags(tags []Tag) bool {
	if len(p.Tags) != len(tags) {
		return false
	}
	for _, t := range tags {
		if !p.HasTag(t.Name) {
			return false
		}
	}
	return true
}
