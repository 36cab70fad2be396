package model

import "fmt"

// Target is one upstream SearXNG instance.
type Target struct {
	Name    string
	BaseURL string
	Primary bool
}

// Kind is the metrics/log label for the target.
func (t Target) Kind() string {
	if t.Primary {
		return "primary"
	}
	return "fallback"
}

// Targets returns the primary followed by the fallbacks, in priority order.
func Targets(primary string, fallbacks []string) []Target {
	targets := make([]Target, 0, len(fallbacks)+1)
	targets = append(targets, Target{Name: "primary", BaseURL: primary, Primary: true})
	for i, base := range fallbacks {
		targets = append(targets, Target{Name: fmt.Sprintf("fallback-%d", i), BaseURL: base})
	}
	return targets
}
