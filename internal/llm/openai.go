package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-mini":    "gpt-4.1-mini",
}

// OpenAIProvider speaks the Chat Completions API. OpenRouter and Workers
// AI reuse it with their own base URLs.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key not set")
	}
	return newOpenAICompatible(cfg, openaiModels), nil
}

// newOpenAICompatible skips key validation; aliases may be nil.
func newOpenAICompatible(cfg OpenAIConfig, aliases map[string]string) *OpenAIProvider {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cc),
		model:  resolveModel(cfg.Model, aliases),
	}
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	out, err := p.client.CreateChatCompletion(ctx, p.completionRequest(req))
	if err != nil {
		return nil, fromOpenAIErr(err)
	}
	if len(out.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("openai reply has no choices")}
	}

	first := out.Choices[0]
	if first.FinishReason == openai.FinishReasonLength {
		return nil, &ErrMaxTokensExceeded{Partial: first.Message.Content}
	}
	return &Response{
		Text:       first.Message.Content,
		Usage:      fromOpenAIUsage(out.Usage),
		Model:      out.Model,
		StopReason: "end",
	}, nil
}

func (p *OpenAIProvider) Stream(ctx context.Context, req Request, onChunk func(string)) (*Response, error) {
	cr := p.completionRequest(req)
	cr.StreamOptions = &openai.StreamOptions{IncludeUsage: true}

	s, err := p.client.CreateChatCompletionStream(ctx, cr)
	if err != nil {
		return nil, fromOpenAIErr(err)
	}
	defer s.Close()

	resp := &Response{Model: p.model, StopReason: "end"}
	var text strings.Builder
	sent := 0
	for {
		part, err := s.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			err = fromOpenAIErr(err)
			if sent > 0 {
				err = &ErrStreamInterrupted{Delivered: sent, Err: err}
			}
			return nil, err
		}

		if part.Model != "" {
			resp.Model = part.Model
		}
		if part.Usage != nil {
			resp.Usage = fromOpenAIUsage(*part.Usage)
		}
		for _, ch := range part.Choices {
			if ch.Index != 0 {
				continue
			}
			if ch.FinishReason == openai.FinishReasonLength {
				resp.StopReason = "max_tokens"
			}
			if ch.Delta.Content == "" {
				continue
			}
			text.WriteString(ch.Delta.Content)
			onChunk(ch.Delta.Content)
			sent++
		}
	}

	if text.Len() == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("openai stream carried no text")}
	}
	resp.Text = text.String()
	return resp, nil
}

func (p *OpenAIProvider) completionRequest(req Request) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	return openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            msgs,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
}

func fromOpenAIUsage(u openai.Usage) Usage {
	return Usage{InputTokens: u.PromptTokens, OutputTokens: u.CompletionTokens, TotalTokens: u.TotalTokens}
}

// fromOpenAIErr recognizes 429 from either an API error body or a bare
// HTTP failure; everything else is reported as unavailable.
func fromOpenAIErr(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
