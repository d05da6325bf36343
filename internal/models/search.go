package models

type SearchResultType string

const (
	SearchResultUser    SearchResultType = "user"
	SearchResultContent SearchResultType = "content"
)

// SearchResult is a tagged union of a user or a content match.
type SearchResult struct {
	Type    SearchResultType `json:"type"`
	User    *UserSummary     `json:"user,omitempty"`
	Content *ContentDetails  `json:"content,omitempty"`
}
