package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseActions(t *testing.T) {
	raw := `You should shortlist TU Delft.

ACTION: SHORTLIST_UNIVERSITY
PARAMS: {"university_id": 42, "category": "target"}

And keep working on your IELTS.

ACTION: CREATE_TASK
PARAMS: {"title": "Book IELTS slot", "priority": 4}`

	actions := ParseActions(raw)
	require.Len(t, actions, 2)

	require.Equal(t, ActionShortlistUniversity, actions[0].Name)
	require.EqualValues(t, 42, actions[0].Params["university_id"])
	require.Equal(t, "target", actions[0].Params["category"])

	require.Equal(t, ActionCreateTask, actions[1].Name)
	require.Equal(t, "Book IELTS slot", actions[1].Params["title"])
}

func TestParseActionsMalformedParams(t *testing.T) {
	raw := "ACTION: CREATE_TASK\nPARAMS: {not json"

	actions := ParseActions(raw)
	require.Len(t, actions, 1)
	require.Equal(t, ActionCreateTask, actions[0].Name)
	require.Empty(t, actions[0].Params)
}

func TestParseActionsWithoutParams(t *testing.T) {
	raw := "Some advice\nACTION: SEARCH_UNIVERSITIES\nmore advice"

	actions := ParseActions(raw)
	require.Len(t, actions, 1)
	require.Equal(t, ActionSearchUniversities, actions[0].Name)
	require.Empty(t, actions[0].Params)
}

func TestParseActionsNone(t *testing.T) {
	require.Nil(t, ParseActions("Just some friendly advice, no commands."))
}

func TestCleanMessage(t *testing.T) {
	raw := `Good choice!

ACTION: LOCK_UNIVERSITY
PARAMS: {"university_id": 7}

Now focus on your SOP.`

	clean := CleanMessage(raw)
	require.NotContains(t, clean, "ACTION:")
	require.NotContains(t, clean, "PARAMS:")
	require.Contains(t, clean, "Good choice!")
	require.Contains(t, clean, "Now focus on your SOP.")
}

func TestCleanMessagePreservesPlainText(t *testing.T) {
	raw := "No actions here."
	require.Equal(t, raw, CleanMessage(raw))
}
