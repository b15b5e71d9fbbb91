package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	adviseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "counsel",
		Subsystem: "ai",
		Name:      "advise_duration_seconds",
		Help:      "Duration of counsellor model requests",
	}, []string{"model"})

	adviseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "counsel",
		Subsystem: "ai",
		Name:      "advise_failures_total",
		Help:      "Number of counsellor model failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI counsellor.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAICounsellor implements Counsellor against the OpenAI chat
// completion API.
type OpenAICounsellor struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAICounsellor builds a counsellor using the provided
// configuration.
func NewOpenAICounsellor(cfg OpenAIConfig) (*OpenAICounsellor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	tracer := otel.Tracer("github.com/uniadvisor/counsel-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &OpenAICounsellor{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Advise sends the conversation to OpenAI and parses the action syntax
// out of the reply.
func (o *OpenAICounsellor) Advise(parent context.Context, input PromptInput) (Reply, error) {
	ctx, span := o.tracer.Start(parent, "openai.advise", trace.WithAttributes(
		attribute.String("model", o.cfg.Model),
	))
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, 0, len(input.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: counsellorSystemPrompt() + "\n\n" + input.StudentContext,
	})

	history := input.History
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: input.Message,
	})

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
		Messages:    messages,
	})
	adviseDuration.WithLabelValues(o.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		adviseFailures.WithLabelValues(o.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, fmt.Errorf("openai advise: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		adviseFailures.WithLabelValues(o.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, err
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)

	return Reply{
		Message: CleanMessage(raw),
		Actions: ParseActions(raw),
	}, nil
}

func counsellorSystemPrompt() string {
	return `You are an AI counsellor for study-abroad students.

Keep responses concise: at most 2-3 short paragraphs or a list of 3-4 items.
Do not repeat information the student already provided.

Your role:
1. Guide decisions actively.
2. Assess profile strengths and gaps briefly.
3. Recommend distinct university options.
4. Take actions: shortlist, lock, create tasks, update the profile, or
   search global universities.

To take an action, emit on separate lines (invisible to the student):
ACTION: <name>
PARAMS: <json object>

Available actions: CREATE_TASK, DELETE_TASK, SHORTLIST_UNIVERSITY,
LOCK_UNIVERSITY, UPDATE_PROFILE, SEARCH_UNIVERSITIES.`
}
