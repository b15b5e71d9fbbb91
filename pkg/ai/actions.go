package ai

import (
	"encoding/json"
	"strings"
)

const (
	actionPrefix = "ACTION:"
	paramsPrefix = "PARAMS:"
)

// Counsellor action names. The model is instructed to emit only these.
const (
	ActionCreateTask          = "CREATE_TASK"
	ActionDeleteTask          = "DELETE_TASK"
	ActionShortlistUniversity = "SHORTLIST_UNIVERSITY"
	ActionLockUniversity      = "LOCK_UNIVERSITY"
	ActionUpdateProfile       = "UPDATE_PROFILE"
	ActionSearchUniversities  = "SEARCH_UNIVERSITIES"
)

// ParseActions extracts ACTION/PARAMS commands from a raw model reply. A
// PARAMS line must immediately follow its ACTION line; malformed params
// are dropped, keeping the action with empty params.
func ParseActions(raw string) []Action {
	var actions []Action
	lines := strings.Split(raw, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, actionPrefix) {
			continue
		}

		action := Action{
			Name:   strings.TrimSpace(strings.TrimPrefix(line, actionPrefix)),
			Params: map[string]interface{}{},
		}

		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if strings.HasPrefix(next, paramsPrefix) {
				payload := strings.TrimSpace(strings.TrimPrefix(next, paramsPrefix))
				var params map[string]interface{}
				if err := json.Unmarshal([]byte(payload), &params); err == nil {
					action.Params = params
				}
				i++
			}
		}

		actions = append(actions, action)
	}

	return actions
}

// CleanMessage strips the action syntax so the user only sees prose.
func CleanMessage(raw string) string {
	lines := strings.Split(raw, "\n")
	clean := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, actionPrefix) {
			if i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), paramsPrefix) {
				i++
			}
			continue
		}
		clean = append(clean, lines[i])
	}

	return strings.TrimSpace(strings.Join(clean, "\n"))
}
