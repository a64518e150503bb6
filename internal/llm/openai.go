package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/openmysteries/backend/internal/pkg/logger"
	"github.com/openmysteries/backend/internal/platform/envutil"
)

// BackendSettings configure the OpenAI-compatible endpoint. BaseURL may point
// at any compatible provider (Groq, local gateways, ...).
type BackendSettings struct {
	APIKey  string
	BaseURL string
	Model   string
}

// SettingsFromEnv reads LLM_API_KEY / LLM_BASE_URL / LLM_MODEL.
func SettingsFromEnv() BackendSettings {
	return BackendSettings{
		APIKey:  envutil.String("LLM_API_KEY", ""),
		BaseURL: envutil.String("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:   envutil.String("LLM_MODEL", "llama-3.1-8b-instant"),
	}
}

// OpenAIBackend implements Backend over an OpenAI-compatible chat completions
// API, requesting JSON object mode.
type OpenAIBackend struct {
	log   *logger.Logger
	model string
	opts  []option.RequestOption
}

func NewOpenAIBackend(log *logger.Logger, cfg BackendSettings) (*OpenAIBackend, error) {
	if log == nil {
		return nil, errors.New("logger required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key missing; set LLM_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIBackend{
		log:   log.With("service", "OpenAIBackend"),
		model: cfg.Model,
		opts:  opts,
	}, nil
}

func (b *OpenAIBackend) Model() string { return b.model }

func (b *OpenAIBackend) CompleteJSON(ctx context.Context, system, user string, temperature float64) (string, error) {
	client := openai.NewClient(b.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(b.model),
		Temperature: openai.Float(temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
