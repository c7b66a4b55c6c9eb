package repositories

import (
	"blog-service/models"

	"gorm.io/gorm"
)

// PostFilter is a predicate over posts. Scope applies it to a query on the
// posts table, Match evaluates it against a loaded post.
type PostFilter interface {
	Scope(db *gorm.DB) *gorm.DB
	Match(post *models.Post) bool
}

// NoFilter matches every post.
type NoFilter struct{}

func (NoFilter) Scope(db *gorm.DB) *gorm.DB { return db }
func (NoFilter) Match(_ *models.Post) bool  { return true }

// ByTag matches posts carrying a tag with exactly this name.
type ByTag struct {
	Name string
}

func (f ByTag) Scope(db *gorm.DB) *gorm.DB {
	return db.Where(
		"posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE tags.name = ?)",
		f.Name,
	)
}

func (f ByTag) Match(post *models.Post) bool {
	return post.HasTag(f.Name)
}

// ByParity matches posts whose number of tags is even or odd.
type ByParity struct {
	Even bool
}

func (f ByParity) remainder() int {
	if f.Even {
		return 0
	}
	return 1
}

func (f ByParity) Scope(db *gorm.DB) *gorm.DB {
	return db.Where(
		"MOD((SELECT COUNT(*) FROM post_tags WHERE post_tags.post_id = posts.id), 2) = ?",
		f.remainder(),
	)
}

func (f ByParity) Match(post *models.Post) bool {
	return len(post.Tags)%2 == f.remainder()
}

// Conjunction matches posts accepted by every operand.
type Conjunction struct {
	Filters []PostFilter
}

func (f Conjunction) Scope(db *gorm.DB) *gorm.DB {
	for _, sub := range f.Filters {
		db = sub.Scope(db)
	}
	return db
}

func (f Conjunction) Match(post *models.Post) bool {
	for _, sub := range f.Filters {
		if !sub.Match(post) {
			return false
		}
	}
	return true
}

// And combines filters. NoFilter operands are dropped, a single remaining
// operand is returned as is and no operands yield NoFilter.
func And(filters ...PostFilter) PostFilter {
	kept := make([]PostFilter, 0, len(filters))
	for _, f := range filters {
		switch f.(type) {
		case nil, NoFilter:
			continue
		}
		kept = append(kept, f)
	}

	switch len(kept) {
	case 0:
		return NoFilter{}
	case 1:
		return kept[0]
	default:
		return Conjunction{Filters: kept}
	}
}
