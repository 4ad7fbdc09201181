// Package catalog holds the fixed practice languages, scenarios and the
// prompt for every pair of them.
package catalog

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageOption is one selectable practice language.
type LanguageOption struct {
	ID    string
	Label string
	Tag   language.Tag // BCP-47 tag; "jp" is the catalog id, not a tag
}

// Native returns the language's name written in that language, e.g. "日本語".
func (l LanguageOption) Native() string {
	return display.Self.Name(l.Tag)
}

// ScenarioOption is one selectable conversation scenario.
type ScenarioOption struct {
	ID    string
	Label string
}

var languages = []LanguageOption{
	{ID: "fr", Label: "French", Tag: language.French},
	{ID: "es", Label: "Spanish", Tag: language.Spanish},
	{ID: "jp", Label: "Japanese", Tag: language.Japanese},
}

var scenarios = []ScenarioOption{
	{ID: "cafe", Label: "Ordering at a cafe"},
	{ID: "meet", Label: "Meeting someone new"},
	{ID: "directions", Label: "Asking for directions"},
	{ID: "shop", Label: "Shopping for a gift"},
}

// Languages returns the languages in display order.
func Languages() []LanguageOption {
	out := make([]LanguageOption, len(languages))
	copy(out, languages)
	return out
}

// Scenarios returns the scenarios in display order.
func Scenarios() []ScenarioOption {
	out := make([]ScenarioOption, len(scenarios))
	copy(out, scenarios)
	return out
}

// Language looks up a language by id.
func Language(id string) (LanguageOption, bool) {
	for _, l := range languages {
		if l.ID == id {
			return l, true
		}
	}
	return LanguageOption{}, false
}

// Scenario looks up a scenario by id.
func Scenario(id string) (ScenarioOption, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioOption{}, false
}

// Validate reports duplicate or empty ids in the catalog.
func Validate() error {
	seen := make(map[string]bool, len(languages))
	for _, l := range languages {
		if l.ID == "" {
			return fmt.Errorf("language %q has an empty id", l.Label)
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate language id %q", l.ID)
		}
		seen[l.ID] = true
	}

	seen = make(map[string]bool, len(scenarios))
	for _, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario %q has an empty id", s.Label)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
