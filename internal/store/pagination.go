package store

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// PaginationParams contains pagination request parameters.
type PaginationParams struct {
	Limit  int    // Items per page (defaults to 50 with a maximum of 500)
	Cursor string // Opaque cursor for the next page (empty for first page)
}

// PaginatedResult contains paginated data and metadata.
type PaginatedResult[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"` // Empty if no more pages
	HasMore    bool   `json:"has_more"`
	Total      int    `json:"total"`
}

// DefaultPaginationParams returns sensible defaults.
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{Limit: 50}
}

// Validate clamps the limit into range.
func (p *PaginationParams) Validate() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
}

// EncodeCursor creates an opaque cursor from the last id of a page.
func EncodeCursor(lastID int64) string {
	if lastID == 0 {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(strconv.FormatInt(lastID, 10)))
}

// DecodeCursor returns the id a page should start after. An empty cursor decodes to 0.
func DecodeCursor(cursor string) (int64, error) {
	if cursor == "" {
		return 0, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor: %w", err)
	}
	id, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid cursor: %q", cursor)
	}
	return id, nil
}
