package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineMapResolve(t *testing.T) {
	m := NewEngineMap(DefaultCategoryEngines, DefaultEngine)

	assert.Equal(t, "google images", m.Resolve("images"))
	assert.Equal(t, "google news", m.Resolve(" News "))
	assert.Equal(t, "google videos", m.Resolve("videos"))
	assert.Equal(t, "google scholar", m.Resolve("science"))
	assert.Equal(t, "google", m.Resolve("general"))
	assert.Equal(t, "google", m.Resolve("music"))
	assert.Equal(t, "google", m.Resolve(""))
}

func TestEngineMapIsIsolatedFromSource(t *testing.T) {
	table := map[string]string{"images": "google images"}
	m := NewEngineMap(table, "duckduckgo")
	table["images"] = "bing images"

	assert.Equal(t, "google images", m.Resolve("images"))
	assert.Equal(t, "duckduckgo", m.Resolve("files"))
}

func TestEngineMapZeroValue(t *testing.T) {
	var m EngineMap
	assert.Equal(t, DefaultEngine, m.Resolve("images"))
}
