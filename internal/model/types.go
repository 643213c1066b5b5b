// Package model holds the persistent and transient domain types shared
// across the import pipeline: Bookmark, Category, ImportSession, and the
// in-memory DiscoveredCategory tree produced by taxonomy discovery.
package model

import "time"

// Bookmark is a single imported link, keyed by its normalized URL.
type Bookmark struct {
	ID              string
	URL             string
	Title           string
	Description     string
	SourceFolder    string
	CategoryID      string
	MetaTitle       string
	MetaDescription string
	OGTitle         string
	OGDescription   string
	OGImage         string
	Keywords        []string
	Summary         string
	SuggestedLabel  string
	Confidence      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Category is a node in the taxonomy forest, keyed by its slug.
type Category struct {
	ID          string
	Slug        string
	Name        string
	Description string
	ParentSlug  string
	Keywords    []string
}

// ImportSession records the outcome of one import run.
type ImportSession struct {
	ID                      string
	FileName                string
	TotalParsed             int
	Successful              int
	Failed                  int
	Skipped                 int
	NewBookmarks            int
	UpdatedBookmarks        int
	DuplicatesInFile        int
	CustomCategoriesCreated int
	AIAssignments           int
	CreatedAt               time.Time
}

// DiscoveredCategory is the transient tree produced between discovery and
// persistence. TempID is a discovery-local identifier replaced with a real
// slug at persistence time.
type DiscoveredCategory struct {
	TempID         string                `json:"tempId"`
	Name           string                `json:"name"`
	Slug           string                `json:"slug"`
	Description    string                `json:"description,omitempty"`
	Keywords       []string              `json:"keywords,omitempty"`
	ParentTempID   string                `json:"parentTempId,omitempty"`
	Level          int                   `json:"level"`
	EstimatedCount int                   `json:"estimatedCount"`
	Children       []*DiscoveredCategory `json:"children,omitempty"`
}
