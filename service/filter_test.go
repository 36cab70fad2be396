package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonutil "searxproxy/util/json"
)

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	envelope, err := jsonutil.DecodeObject([]byte(body))
	require.NoError(t, err)
	return envelope
}

func TestFilterEnvelopeWithoutResultsIsUnchanged(t *testing.T) {
	envelope := decode(t, `{"query":"cats","answers":["a"],"engine":"google"}`)
	assert.Equal(t, envelope, FilterEnvelope(envelope))

	notArray := decode(t, `{"results":"oops","answers":["a"]}`)
	assert.Equal(t, notArray, FilterEnvelope(notArray))
}

func TestFilterEnvelopeRemovesAttribution(t *testing.T) {
	envelope := decode(t, `{
		"query": "cats",
		"number_of_results": 12,
		"engine": "google",
		"engines": ["google", "bing"],
		"answers": ["cats are mammals"],
		"infoboxes": [{"infobox": "Cat", "engine": "wikipedia"}],
		"suggestions": ["kittens"],
		"results": [
			{"title": "Cat", "url": "https://cat", "content": "c", "engine": "google", "engines": ["google"],
			 "positions": [1], "score": 2.5, "category": "general", "pretty_url": "cat"},
			{"title": "Kitten", "url": "https://kitten", "content": null, "publishedDate": "2024-01-02T00:00:00",
			 "thumbnail": "https://thumb", "template": "videos.html"},
			"not an object"
		]
	}`)

	filtered := FilterEnvelope(envelope)

	for _, key := range []string{"engine", "engines", "answers", "infoboxes"} {
		assert.NotContains(t, filtered, key)
	}
	assert.Equal(t, "cats", filtered["query"])
	assert.Contains(t, filtered, "number_of_results")
	assert.Contains(t, filtered, "suggestions")

	results := filtered["results"].([]interface{})
	require.Len(t, results, 2)

	assert.Equal(t, map[string]interface{}{
		"title":    "Cat",
		"url":      "https://cat",
		"content":  "c",
		"template": DefaultTemplate,
	}, results[0])
	assert.Equal(t, map[string]interface{}{
		"title":         "Kitten",
		"url":           "https://kitten",
		"publishedDate": "2024-01-02T00:00:00",
		"thumbnail":     "https://thumb",
		"template":      "videos.html",
	}, results[1])
}

func TestFilterEnvelopeDoesNotMutateInput(t *testing.T) {
	envelope := decode(t, `{"answers":["a"],"results":[{"title":"T","engine":"google"}]}`)

	FilterEnvelope(envelope)

	assert.Contains(t, envelope, "answers")
	item := envelope["results"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "google", item["engine"])
}

func TestFilterEnvelopeIsIdempotent(t *testing.T) {
	envelope := decode(t, `{"query":"q","engines":["g"],"answers":[],"infoboxes":[],
		"results":[{"title":"T","url":"U","content":"C","thumbnail":null,"engine":"g"},{"url":"only-url"}]}`)

	once := FilterEnvelope(envelope)
	twice := FilterEnvelope(once)
	assert.Equal(t, once, twice)

	onceJSON, err := jsonutil.Marshal(once)
	require.NoError(t, err)
	reparsed := decode(t, string(onceJSON))
	assert.Equal(t, reparsed, FilterEnvelope(reparsed))
}

func TestFilterEnvelopeEmptyResults(t *testing.T) {
	filtered := FilterEnvelope(decode(t, `{"results":[],"infoboxes":[{}]}`))
	assert.Equal(t, []interface{}{}, filtered["results"])
	assert.NotContains(t, filtered, "infoboxes")
}
