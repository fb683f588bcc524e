package models

import "encoding/json"

// Envelope is the response wrapper used by the upstream Content API and
// mirrored by the gateway's own endpoints.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasMore     bool `json:"hasMore"`
	TotalItems  int  `json:"totalItems"`
}

// ItemPage is one page of a paginated collection.
type ItemPage struct {
	Items      []MediaItem `json:"items"`
	Pagination Pagination  `json:"pagination"`
}
