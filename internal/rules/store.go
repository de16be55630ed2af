package rules

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store owns the rule set and its persistence. The file is read once at
// construction and rewritten wholesale on every mutation. Single-operator,
// single-process usage is assumed; concurrent invocations would race on the
// file and are out of scope.
type Store struct {
	set  *Set
	path string
}

// Load reads the rules file at path, falling back to the built-in defaults
// when the file is absent or malformed. The fallback is deliberate and
// silent: the tool must remain operable without a rules file.
func Load(path string) *Store {
	st := &Store{set: DefaultSet(), path: path}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		slog.Debug("rules file not read, using built-in defaults", "path", path, "error", err)
		return st
	}

	parsed := NewSet()
	if err := json.Unmarshal(data, parsed); err != nil {
		slog.Warn("rules file malformed, using built-in defaults", "path", path, "error", err)
		return st
	}

	st.set = parsed
	return st
}

// Categories returns the category names in rule precedence order.
func (s *Store) Categories() []string {
	return s.set.Categories()
}

// Keywords returns the keyword list for a category.
func (s *Store) Keywords(category string) []string {
	return s.set.Keywords(category)
}

// Add normalizes the keyword to lowercase, trims whitespace, and appends it
// to the category's list. Adding an already-present keyword is a no-op.
// Every mutation is immediately persisted.
func (s *Store) Add(category, keyword string) (bool, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return false, nil
	}

	if !s.set.Add(category, keyword) {
		return false, nil
	}

	if err := s.Save(); err != nil {
		return true, err
	}

	slog.Debug("rule added", "category", category, "keyword", keyword, "path", s.path)
	return true, nil
}

// Save serializes the full rule set deterministically and rewrites the file.
// Safe to call repeatedly on unchanged state.
func (s *Store) Save() error {
	payload, err := json.MarshalIndent(s.set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize rules: %w", err)
	}
	payload = append(payload, '\n')

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create rules directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	return nil
}
