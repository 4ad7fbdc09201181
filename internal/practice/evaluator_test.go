package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Tier
	}{
		{"single word", "Hi", TierBrief},
		{"statement", "Hello there, I would like a coffee please", TierNoQuestion},
		{"polite question", "Hello, could I get a coffee with oat milk?", TierComplete},
		{"short question stays brief", "Do you have milk?", TierBrief},
		{"five words with question", "Could I have a coffee?", TierBrief},
		{"six words with question", "Could I have a coffee, please?", TierComplete},
		{"six words no question", "I would like a coffee please", TierNoQuestion},
		{"surrounding whitespace", "  \n Could I have a coffee, please?\t ", TierComplete},
		{"whitespace runs", "I   would\tlike\n\na   coffee please", TierNoQuestion},
		{"question mark inside", "Is it sweet? I would like one", TierNoQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.response)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		tier, err := Evaluate(in)
		assert.ErrorIs(t, err, ErrEmptyResponse)
		assert.Empty(t, tier)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	const response = "Hello, could I get a coffee with oat milk?"
	first, err := Evaluate(response)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Evaluate(response)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTierMessages(t *testing.T) {
	assert.Equal(t, "Good start. Try adding one more sentence to make it feel natural.", TierBrief.Message())
	assert.Equal(t, "Nice! Consider adding a polite question to keep the conversation going.", TierNoQuestion.Message())
	assert.Equal(t, "Great flow! Your response sounds conversational and polite.", TierComplete.Message())
	assert.Empty(t, Tier("").Message())
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Empty(t, UserMessage(ErrSelectionIncomplete))
	assert.Equal(t, "No prompt found for that selection. Try another scenario.", UserMessage(ErrPromptNotFound))
	assert.Equal(t, "Select a language and scenario to get a prompt.", UserMessage(ErrMissingPrompt))
	assert.Equal(t, "Type a response before submitting.", UserMessage(ErrEmptyResponse))
	assert.Equal(t, "This practice session has ended. Reload to start again.", UserMessage(ErrSessionClosed))
}
