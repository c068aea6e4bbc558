// internal/models/news.go
package models

// NewsCategory groups aggregated items for display.
type NewsCategory string

const (
	CategoryVisaUpdate  NewsCategory = "Visa Update"
	CategoryCitizenship NewsCategory = "Citizenship"
	CategorySafety      NewsCategory = "Safety"
	CategoryPolicy      NewsCategory = "Policy"
)

// NewsItem is one aggregated feed entry. Items are rebuilt on every refresh
// and never persisted.
type NewsItem struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Excerpt  string       `json:"excerpt"`
	URL      string       `json:"url"`
	Date     string       `json:"date"`
	RawDate  int64        `json:"rawDate"` // unix milliseconds, sort key
	Category NewsCategory `json:"category"`
	Source   string       `json:"source"`
}
