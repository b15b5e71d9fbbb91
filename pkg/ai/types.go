package ai

import "context"

// Message is one prior conversation turn supplied as context.
type Message struct {
	Role    string
	Content string
}

// PromptInput carries everything the counsellor model needs: the student
// context block, recent history, and the new message.
type PromptInput struct {
	StudentContext string
	History        []Message
	Message        string
}

// Action is a structured command the model may embed in its reply using
// the ACTION/PARAMS line syntax.
type Action struct {
	Name   string                 `json:"action"`
	Params map[string]interface{} `json:"params"`
}

// Reply is the parsed counsellor response: the user-visible text with the
// action syntax stripped, plus the extracted actions.
type Reply struct {
	Message  string
	Actions  []Action
	Fallback bool
}

// Counsellor describes a model capable of advising a student and
// requesting actions.
type Counsellor interface {
	Advise(ctx context.Context, input PromptInput) (Reply, error)
}
