package config

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/dkrenn/tempus/internal/domain"
)

// ResolveMode maps a possibly-abbreviated mode name ("pomo", "cd") to
// a Mode. Exact names win; otherwise the best fuzzy match is taken.
func ResolveMode(input string) (domain.Mode, error) {
	if m, err := domain.ModeFromName(input); err == nil {
		return m, nil
	}
	name, err := fuzzyPick(input, domain.ModeNames())
	if err != nil {
		return 0, fmt.Errorf("mode: %w", err)
	}
	return domain.ModeFromName(name)
}

// ResolveStyle maps a possibly-abbreviated style name to a Style.
func ResolveStyle(input string) (domain.Style, error) {
	if s, err := domain.StyleFromName(input); err == nil {
		return s, nil
	}
	name, err := fuzzyPick(input, domain.StyleNames())
	if err != nil {
		return 0, fmt.Errorf("style: %w", err)
	}
	return domain.StyleFromName(name)
}

func fuzzyPick(input string, candidates []string) (string, error) {
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return "", fmt.Errorf("%q matches none of %v", input, candidates)
	}
	return matches[0].Str, nil
}
