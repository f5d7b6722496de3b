package content

import (
	"errors"
	"strings"
)

// MaxTags bounds the number of tags on a post.
const MaxTags = 10

var (
	ErrTagEmpty     = errors.New("tag is empty")
	ErrTagDuplicate = errors.New("tag already added")
	ErrTagLimit     = errors.New("tag limit reached")
)

// TagSet is an ordered, lower-cased set of at most MaxTags tags.
type TagSet struct {
	values []string
}

// Add normalizes tag and appends it.
func (s *TagSet) Add(tag string) error {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return ErrTagEmpty
	}
	for _, existing := range s.values {
		if existing == normalized {
			return ErrTagDuplicate
		}
	}
	if len(s.values) >= MaxTags {
		return ErrTagLimit
	}
	s.values = append(s.values, normalized)
	return nil
}

// Remove deletes tag if present.
func (s *TagSet) Remove(tag string) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	for i, existing := range s.values {
		if existing == normalized {
			s.values = append(s.values[:i], s.values[i+1:]...)
			return
		}
	}
}

// Len reports how many tags are held.
func (s *TagSet) Len() int {
	return len(s.values)
}

// Values returns a copy of the tags in insertion order.
func (s *TagSet) Values() []string {
	return append([]string{}, s.values...)
}

// NormalizeTags runs tags through a TagSet, dropping the ones it rejects.
func NormalizeTags(tags []string) []string {
	var set TagSet
	for _, tag := range tags {
		_ = set.Add(tag)
	}
	return set.Values()
}

// SplitTags breaks comma or whitespace separated input into candidate tags.
func SplitTags(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '#'
	})
}
