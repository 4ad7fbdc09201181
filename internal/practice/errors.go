package practice

import "errors"

// All practice errors are recoverable and rendered inline next to the prompt.
var (
	ErrSelectionIncomplete = errors.New("practice: language or scenario not selected")
	ErrPromptNotFound      = errors.New("practice: no prompt for selection")
	ErrMissingPrompt       = errors.New("practice: no active prompt")
	ErrEmptyResponse       = errors.New("practice: empty response")
	ErrSubmitPending       = errors.New("practice: response already being checked")
	ErrSessionClosed       = errors.New("practice: session closed")
)

// UserMessage returns the inline text shown for err. SelectionIncomplete is
// shown as the Waiting badge, so it has no text.
func UserMessage(err error) string {
	switch {
	case err == nil, errors.Is(err, ErrSelectionIncomplete):
		return ""
	case errors.Is(err, ErrPromptNotFound):
		return "No prompt found for that selection. Try another scenario."
	case errors.Is(err, ErrMissingPrompt):
		return "Select a language and scenario to get a prompt."
	case errors.Is(err, ErrEmptyResponse):
		return "Type a response before submitting."
	case errors.Is(err, ErrSubmitPending):
		return "Still checking your last response."
	case errors.Is(err, ErrSessionClosed):
		return "This practice session has ended. Reload to start again."
	default:
		return "Something went wrong. Try again."
	}
}
