package catalog

import (
	"errors"
	"fmt"
)

// PromptTable maps language id -> scenario id -> prompt text.
type PromptTable map[string]map[string]string

// Prompt returns the prompt for a pair. The error is always nil; it is there
// so a table can stand in for a stored prompt source.
func (t PromptTable) Prompt(languageID, scenarioID string) (string, bool, error) {
	text, ok := t[languageID][scenarioID]
	if !ok || text == "" {
		return "", false, nil
	}
	return text, true, nil
}

// Len returns the number of non-empty prompts.
func (t PromptTable) Len() int {
	n := 0
	for _, byScenario := range t {
		for _, text := range byScenario {
			if text != "" {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the table.
func (t PromptTable) Clone() PromptTable {
	out := make(PromptTable, len(t))
	for lang, byScenario := range t {
		inner := make(map[string]string, len(byScenario))
		for sc, text := range byScenario {
			inner[sc] = text
		}
		out[lang] = inner
	}
	return out
}

// CheckComplete returns an error naming every catalog pair the table lacks.
func CheckComplete(t PromptTable) error {
	var errs []error
	for _, l := range languages {
		for _, s := range scenarios {
			if _, ok, _ := t.Prompt(l.ID, s.ID); !ok {
				errs = append(errs, fmt.Errorf("missing prompt for %s/%s", l.ID, s.ID))
			}
		}
	}
	return errors.Join(errs...)
}

var defaultPrompts = PromptTable{
	"fr": {
		"cafe":       "You are at a cafe in Paris. Order a coffee and ask if they have oat milk.",
		"meet":       "You are at a language meetup in Lyon. Introduce yourself and ask what the other person does.",
		"directions": "You are near the Louvre. Ask how to get to the nearest metro station.",
		"shop":       "You are in a small shop. Ask for a gift recommendation under 20 euros.",
	},
	"es": {
		"cafe":       "You are at a cafe in Madrid. Order a coffee and ask if they have oat milk.",
		"meet":       "You are meeting a neighbor in Mexico City. Introduce yourself and ask where they are from.",
		"directions": "You are in Barcelona. Ask how to get to the beach and if it is walkable.",
		"shop":       "You are in a market. Ask for a souvenir that is easy to pack.",
	},
	"jp": {
		"cafe":       "You are at a cafe in Tokyo. Order a matcha latte and ask if it is sweetened.",
		"meet":       "You are meeting a friend of a friend. Introduce yourself and ask what they like to do.",
		"directions": "You are at a train station. Ask which platform you need for Shibuya.",
		"shop":       "You are in a bookstore. Ask for a recommendation for beginners learning Japanese.",
	},
}

// DefaultPrompts returns a copy of the built-in prompt table.
func DefaultPrompts() PromptTable {
	return defaultPrompts.Clone()
}
