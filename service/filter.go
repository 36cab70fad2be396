package service

// DefaultTemplate is set on filtered results that carry no template.
const DefaultTemplate = "default.html"

// resultFields is the allowlist kept on every filtered result.
var resultFields = []string{"title", "url", "content", "publishedDate", "thumbnail", "template"}

// attributionKeys are removed from a filtered envelope.
var attributionKeys = []string{"engine", "engines", "answers", "infoboxes"}

// FilterEnvelope strips engine attribution from a SearXNG envelope. It returns a
// new map and leaves envelope untouched. An envelope without a results array is
// returned as is.
func FilterEnvelope(envelope map[string]interface{}) map[string]interface{} {
	raw, ok := envelope["results"]
	if !ok {
		return envelope
	}
	items, ok := raw.([]interface{})
	if !ok {
		return envelope
	}

	filtered := make(map[string]interface{}, len(envelope))
	for key, value := range envelope {
		filtered[key] = value
	}
	for _, key := range attributionKeys {
		delete(filtered, key)
	}

	results := make([]interface{}, 0, len(items))
	for _, item := range items {
		result, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		results = append(results, filterResult(result))
	}
	filtered["results"] = results

	return filtered
}

func filterResult(result map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(resultFields))
	for _, field := range resultFields {
		if value, ok := result[field]; ok && value != nil {
			out[field] = value
		}
	}
	if _, ok := out["template"]; !ok {
		out["template"] = DefaultTemplate
	}
	return out
}
