package model

import (
	"fmt"
	"strings"
)

// Category tags a fact at ingest time and scopes retrieval queries.
type Category string

const (
	CategorySkill      Category = "skill"
	CategoryExperience Category = "experience"
	CategoryEducation  Category = "education"
	CategoryProject    Category = "project"
)

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{CategorySkill, CategoryExperience, CategoryEducation, CategoryProject}
}

func ParseCategory(value string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(value))) {
	case CategorySkill:
		return CategorySkill, nil
	case CategoryExperience:
		return CategoryExperience, nil
	case CategoryEducation:
		return CategoryEducation, nil
	case CategoryProject:
		return CategoryProject, nil
	default:
		return "", fmt.Errorf("unknown category: %s", value)
	}
}

func (c Category) String() string {
	return string(c)
}

// Fact is one atomic, categorized, owner-tagged piece of user-supplied text.
// Facts are immutable once created; re-submitting the same text creates new
// facts with fresh ids.
type Fact struct {
	ID       string   `json:"id"`
	OwnerID  string   `json:"owner_id"`
	Category Category `json:"category"`
	Content  string   `json:"content"`
	Ctime    int64    `json:"ctime"`
}
