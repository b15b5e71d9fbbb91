package ai

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// OfflineCounsellor is a deterministic rule-based fallback used when no
// model API key is configured or the upstream call fails. It never errors,
// so chat always degrades gracefully instead of returning a 500.
type OfflineCounsellor struct {
	logger zerolog.Logger
}

// NewOfflineCounsellor constructs the fallback counsellor.
func NewOfflineCounsellor(logger zerolog.Logger) *OfflineCounsellor {
	return &OfflineCounsellor{logger: logger.With().Str("component", "offline_counsellor").Logger()}
}

// Advise produces a canned but context-aware reply.
func (o *OfflineCounsellor) Advise(_ context.Context, input PromptInput) (Reply, error) {
	message := strings.ToLower(input.Message)

	switch {
	case strings.Contains(message, "task"):
		return Reply{
			Message: "I've added a task to keep your application on track. Check your guidance checklist for the details.",
			Actions: []Action{{
				Name: ActionCreateTask,
				Params: map[string]interface{}{
					"title":    "Review application requirements",
					"priority": 3,
				},
			}},
			Fallback: true,
		}, nil
	case strings.Contains(message, "search") || strings.Contains(message, "find"):
		country := detectCountry(message)
		params := map[string]interface{}{}
		if country != "" {
			params["country"] = country
		}
		return Reply{
			Message:  "Here are universities from the global directory matching your request.",
			Actions:  []Action{{Name: ActionSearchUniversities, Params: params}},
			Fallback: true,
		}, nil
	default:
		return Reply{
			Message: "I'm running in offline mode right now, so I can only give general advice. " +
				"Based on your profile, focus on universities whose GPA requirement you meet or exceed, " +
				"and keep your test scores and SOP moving in parallel.",
			Fallback: true,
		}, nil
	}
}

func detectCountry(message string) string {
	known := []string{
		"United States", "United Kingdom", "Canada", "Australia",
		"Germany", "France", "Netherlands", "Ireland", "Singapore",
	}
	for _, country := range known {
		if strings.Contains(message, strings.ToLower(country)) {
			return country
		}
	}
	return ""
}
