package service

import "strings"

// DefaultEngine is used for categories missing from the table.
const DefaultEngine = "google"

// DefaultCategoryEngines maps a SearXNG category to the single Google engine
// that serves it.
var DefaultCategoryEngines = map[string]string{
	"general": "google",
	"images":  "google images",
	"news":    "google news",
	"videos":  "google videos",
	"science": "google scholar",
	"it":      "google",
}

// EngineMap resolves a category to exactly one engine. It is read-only after
// construction.
type EngineMap struct {
	table    map[string]string
	fallback string
}

// NewEngineMap copies table so later changes to it have no effect.
func NewEngineMap(table map[string]string, fallback string) EngineMap {
	if fallback == "" {
		fallback = DefaultEngine
	}
	copied := make(map[string]string, len(table))
	for category, engine := range table {
		copied[strings.ToLower(strings.TrimSpace(category))] = engine
	}
	return EngineMap{table: copied, fallback: fallback}
}

// Resolve returns the engine for category.
func (m EngineMap) Resolve(category string) string {
	if engine, ok := m.table[strings.ToLower(strings.TrimSpace(category))]; ok {
		return engine
	}
	if m.fallback == "" {
		return DefaultEngine
	}
	return m.fallback
}
