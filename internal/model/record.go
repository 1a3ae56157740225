// Package model defines the entity record produced by the research pipeline
// and the partial shapes returned by individual sources.
package model

import "time"

// ValueUnknown is the textual default for scalar fields no source could fill.
const ValueUnknown = "N/A"

// NewsItem is a single news reference for an entity.
type NewsItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// EntityRecord is the persisted unit of research output. After a research run
// every field holds either discovered data or its documented default;
// EmployeeCount is the only field allowed to stay absent.
type EntityRecord struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Website       string            `json:"website"`
	Description   string            `json:"description"`
	FoundedYear   string            `json:"founded_year"`
	Headquarters  string            `json:"headquarters"`
	Industries    []string          `json:"industries"`
	Funding       map[string]any    `json:"funding"`
	Founders      []string          `json:"founders"`
	EmployeeCount *int              `json:"employee_count,omitempty"`
	Products      []string          `json:"products"`
	SocialLinks   map[string]string `json:"social_links"`
	News          []NewsItem        `json:"news"`
	LastUpdated   time.Time         `json:"last_updated"`
}

// WebsiteProfile holds what a website scrape could recover.
type WebsiteProfile struct {
	Website     string            `json:"website"`
	Description string            `json:"description"`
	Products    []string          `json:"products"`
	SocialLinks map[string]string `json:"social_links"`
}

// StructuredProfile holds what the encyclopedia lookup could recover.
type StructuredProfile struct {
	FoundedYear   string         `json:"founded_year"`
	Headquarters  string         `json:"headquarters"`
	Industries    []string       `json:"industries"`
	Funding       map[string]any `json:"funding"`
	Founders      []string       `json:"founders"`
	EmployeeCount *int           `json:"employee_count,omitempty"`
}
