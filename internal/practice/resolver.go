package practice

import (
	"context"

	"github.com/lojasmm/convostarter/internal/logger"
)

// PromptSource looks up the prompt for a (language, scenario) pair. ok is
// false when the pair has no prompt.
type PromptSource interface {
	Prompt(languageID, scenarioID string) (text string, ok bool, err error)
}

// Status is the state of the selection machine.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusNotFound   Status = "not_found"
)

// Badge is the status indicator text: Waiting, Loading or Ready.
func (s Status) Badge() string {
	switch s {
	case StatusIdle:
		return "Waiting"
	case StatusGenerating:
		return "Loading"
	default:
		return "Ready"
	}
}

// Outcome is the result of resolving a selection.
type Outcome struct {
	Status Status
	Prompt string
	Err    error
}

// Resolver turns a complete selection into a prompt.
type Resolver struct {
	prompts PromptSource
	log     *logger.Logger
}

func NewResolver(prompts PromptSource, log *logger.Logger) *Resolver {
	return &Resolver{prompts: prompts, log: log}
}

// Resolve is a pure function of the pair for a fixed prompt source. A failing
// source is logged and treated as a missing prompt.
func (r *Resolver) Resolve(ctx context.Context, languageID, scenarioID string) Outcome {
	if languageID == "" || scenarioID == "" {
		return Outcome{Status: StatusIdle, Err: ErrSelectionIncomplete}
	}
	if err := ctx.Err(); err != nil {
		return Outcome{Status: StatusIdle, Err: err}
	}

	text, ok, err := r.prompts.Prompt(languageID, scenarioID)
	if err != nil {
		r.log.Error("prompt lookup failed", "language", languageID, "scenario", scenarioID, "error", err)
		return Outcome{Status: StatusNotFound, Err: ErrPromptNotFound}
	}
	if !ok {
		r.log.Warn("no prompt for selection", "language", languageID, "scenario", scenarioID)
		return Outcome{Status: StatusNotFound, Err: ErrPromptNotFound}
	}
	return Outcome{Status: StatusReady, Prompt: text}
}
