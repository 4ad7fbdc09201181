package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestDefaultPromptsComplete(t *testing.T) {
	table := DefaultPrompts()
	require.NoError(t, CheckComplete(table))
	assert.Equal(t, len(Languages())*len(Scenarios()), table.Len())
	assert.Equal(t, 12, table.Len())
}

func TestCheckCompleteNamesMissingPairs(t *testing.T) {
	table := DefaultPrompts()
	delete(table["jp"], "shop")
	table["fr"]["cafe"] = ""

	err := CheckComplete(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing prompt for jp/shop")
	assert.Contains(t, err.Error(), "missing prompt for fr/cafe")
}

func TestPromptLookup(t *testing.T) {
	table := DefaultPrompts()

	text, ok, err := table.Prompt("es", "directions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "You are in Barcelona. Ask how to get to the beach and if it is walkable.", text)

	_, ok, err = table.Prompt("de", "cafe")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = table.Prompt("fr", "")
	assert.False(t, ok)
}

func TestDefaultPromptsIsACopy(t *testing.T) {
	table := DefaultPrompts()
	table["fr"]["cafe"] = "changed"

	text, _, _ := DefaultPrompts().Prompt("fr", "cafe")
	assert.Equal(t, "You are at a cafe in Paris. Order a coffee and ask if they have oat milk.", text)
}

func TestLookupByID(t *testing.T) {
	l, ok := Language("jp")
	require.True(t, ok)
	assert.Equal(t, "Japanese", l.Label)
	assert.Equal(t, "ja", l.Tag.String())
	assert.Equal(t, "日本語", l.Native())

	s, ok := Scenario("meet")
	require.True(t, ok)
	assert.Equal(t, "Meeting someone new", s.Label)

	_, ok = Language("")
	assert.False(t, ok)
	_, ok = Scenario("airport")
	assert.False(t, ok)
}

func TestOrder(t *testing.T) {
	var ids []string
	for _, l := range Languages() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"fr", "es", "jp"}, ids)

	ids = nil
	for _, s := range Scenarios() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"cafe", "meet", "directions", "shop"}, ids)
}
