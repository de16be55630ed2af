// Package rules implements the persistent keyword rule store that drives
// rule-based categorization.
package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Set is an order-preserving mapping from category name to an ordered list of
// lowercase keywords. Iteration order is insertion order; lookups resolve
// overlapping keywords first-match-wins, so the order is load-bearing and must
// survive a save/load round trip.
type Set struct {
	keywords map[string][]string
	order    []string
}

// NewSet creates an empty rule set.
func NewSet() *Set {
	return &Set{keywords: make(map[string][]string)}
}

// Categories returns the category names in insertion order.
func (s *Set) Categories() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Keywords returns the keyword list for a category in insertion order.
func (s *Set) Keywords(category string) []string {
	kws := s.keywords[category]
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// Len returns the number of categories in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// Add appends a keyword to a category, creating the category if needed. It
// returns false when the keyword was already present (the call is a no-op).
// The same keyword may appear under multiple categories; first-match-wins
// resolves the ambiguity at lookup time, not here.
func (s *Set) Add(category, keyword string) bool {
	existing, ok := s.keywords[category]
	if !ok {
		s.order = append(s.order, category)
		s.keywords[category] = []string{keyword}
		return true
	}
	for _, kw := range existing {
		if kw == keyword {
			return false
		}
	}
	s.keywords[category] = append(existing, keyword)
	return true
}

// MarshalJSON serializes the set as a JSON object whose key order matches the
// set's insertion order. The standard map marshaling sorts keys, which would
// destroy rule precedence.
func (s *Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(category)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal category %q: %w", category, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.keywords[category])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal keywords for %q: %w", category, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object preserving its key order.
func (s *Set) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read rules object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("rules file must contain a JSON object, got %v", tok)
	}

	s.keywords = make(map[string][]string)
	s.order = nil

	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return fmt.Errorf("failed to read category name: %w", keyErr)
		}
		category, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}

		var kws []string
		if decErr := dec.Decode(&kws); decErr != nil {
			return fmt.Errorf("failed to decode keywords for %q: %w", category, decErr)
		}

		if _, seen := s.keywords[category]; !seen {
			s.order = append(s.order, category)
		}
		s.keywords[category] = kws
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("failed to read closing brace: %w", err)
	}

	return nil
}
