package dial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddActionReplacesByID(t *testing.T) {
	var info AccessibilityInfo
	info.AddAction(Action{ID: ActionClick, Label: "change"})
	info.AddAction(Action{ID: "scroll", Label: "scroll"})
	info.AddAction(Action{ID: ActionClick, Label: "reset"})

	require.Len(t, info.Actions, 2)
	a, ok := info.Action(ActionClick)
	require.True(t, ok)
	assert.Equal(t, "reset", a.Label)

	_, ok = info.Action("long_press")
	assert.False(t, ok)
}

func TestActionLookupOnReturnedInfo(t *testing.T) {
	w, err := New(testConfig(), englishLabels)
	require.NoError(t, err)

	a, ok := w.AccessibilityInfo().Action(ActionClick)
	require.True(t, ok)
	assert.Equal(t, "change", a.Label)
}

func TestActionPhrase(t *testing.T) {
	want := map[Option]LabelID{Off: LabelChange, Low: LabelChange, Medium: LabelChange, High: LabelReset}
	for o, id := range want {
		assert.Equal(t, id, ActionPhrase(o), "ActionPhrase(%s)", o)
	}
}
