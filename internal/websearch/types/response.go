package types

// Source identifies which provider produced a result
type Source string

const (
	SourceWeb   Source = "Web"
	SourceVideo Source = "Video"
)

// UnknownDate is used when a provider does not supply a usable timestamp
const UnknownDate = "Unknown"

// SearchResult is the normalized record every provider maps into
type SearchResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      Source `json:"source"`
	Thumbnail   string `json:"thumbnail"`
	Date        string `json:"date"`
}
