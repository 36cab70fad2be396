package util

import (
	"strconv"
	"strings"
)

// StringToInt converts s to an int, returning 0 when s is empty or not a number.
func StringToInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// PageNumber normalizes a page query value; anything below 1 becomes 1.
func PageNumber(s string) int {
	if page := StringToInt(s); page > 0 {
		return page
	}
	return 1
}
