package pages

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseID reads a positive post id, returning 0 when the value is invalid.
func ParseID(value string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func queryEscape(value string) string {
	return url.QueryEscape(value)
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
