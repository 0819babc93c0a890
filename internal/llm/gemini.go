package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-lite":  "gemini-2.5-flash-lite",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider uses the Gemini API backend of the genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key not set")
	}

	cc := &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiProvider{client: c, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) ModelID() string { return p.model }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	contents, gc := toGemini(req)
	res, err := p.client.Models.GenerateContent(ctx, p.model, contents, gc)
	if err != nil {
		return nil, fromGeminiErr(err)
	}

	text := res.Text()
	if text == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("gemini reply has no text")}
	}
	stop := geminiStop(res)
	if stop == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Partial: text}
	}
	return &Response{Text: text, Usage: fromGeminiUsage(res.UsageMetadata), Model: p.model, StopReason: stop}, nil
}

func (p *GeminiProvider) Stream(ctx context.Context, req Request, onChunk func(string)) (*Response, error) {
	contents, gc := toGemini(req)
	resp := &Response{Model: p.model, StopReason: "end"}
	var text strings.Builder
	sent := 0

	for res, err := range p.client.Models.GenerateContentStream(ctx, p.model, contents, gc) {
		if err != nil {
			err = fromGeminiErr(err)
			if sent > 0 {
				err = &ErrStreamInterrupted{Delivered: sent, Err: err}
			}
			return nil, err
		}
		if res.UsageMetadata != nil {
			resp.Usage = fromGeminiUsage(res.UsageMetadata)
		}
		resp.StopReason = geminiStop(res)
		if t := res.Text(); t != "" {
			text.WriteString(t)
			onChunk(t)
			sent++
		}
	}

	if text.Len() == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("gemini stream carried no text")}
	}
	resp.Text = text.String()
	return resp, nil
}

// toGemini splits a Request into conversation contents and generation
// config. Gemini calls the assistant role "model".
func toGemini(req Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}

	gc := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		gc.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		gc.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	return contents, gc
}

func fromGeminiUsage(u *genai.GenerateContentResponseUsageMetadata) Usage {
	if u == nil {
		return Usage{}
	}
	return Usage{
		InputTokens:  int(u.PromptTokenCount),
		OutputTokens: int(u.CandidatesTokenCount),
		TotalTokens:  int(u.TotalTokenCount),
	}
}

func geminiStop(res *genai.GenerateContentResponse) string {
	if len(res.Candidates) > 0 && res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return "max_tokens"
	}
	return "end"
}

func fromGeminiErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
