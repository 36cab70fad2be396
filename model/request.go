package model

import (
	"strings"

	"searxproxy/util"
)

const (
	// DefaultCategory is used when the client sends no category.
	DefaultCategory = "general"
	// DefaultLanguage is used when the client sends no lang.
	DefaultLanguage = "en"
)

// SearchRequest is a normalized client search.
type SearchRequest struct {
	Query    string `json:"q"`
	Category string `json:"category"`
	Language string `json:"lang"`
	Page     int    `json:"page"`
	Engines  string `json:"engines,omitempty"`
}

// NewSearchRequest trims the query and fills in defaults. An empty query is kept
// empty so the caller can reject it.
func NewSearchRequest(query, category, language, page, engines string) SearchRequest {
	req := SearchRequest{
		Query:    strings.TrimSpace(query),
		Category: strings.TrimSpace(category),
		Language: strings.TrimSpace(language),
		Page:     util.PageNumber(page),
		Engines:  strings.TrimSpace(engines),
	}
	if req.Category == "" {
		req.Category = DefaultCategory
	}
	if req.Language == "" {
		req.Language = DefaultLanguage
	}
	return req
}

// IsBlank reports whether the query is missing.
func (r SearchRequest) IsBlank() bool {
	return r.Query == ""
}
