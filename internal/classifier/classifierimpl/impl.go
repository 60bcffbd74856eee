package classifierimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/orwa-kh/syria-post-watch/internal/classifier"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/errors"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// GroqImpl calls an OpenAI-compatible chat completions endpoint.
type GroqImpl struct {
	client *resty.Client
	model  string
	logger logger.Logger
}

func New(opts Opts) *GroqImpl {
	client := resty.New().
		SetBaseURL(opts.Config.Groq.BaseUrl).
		SetAuthToken(opts.Config.Groq.ApiKey).
		SetTimeout(60 * time.Second)

	return &GroqImpl{
		client: client,
		model:  opts.Config.Groq.Model,
		logger: opts.Logger.WithComponent("Classifier"),
	}
}

var _ classifier.Client = (*GroqImpl)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Classify sends the post text to the LLM. The upstream failure propagates to
// the caller untouched; there is no retry here since callers resubmit.
func (g *GroqImpl) Classify(ctx context.Context, text string) (classifier.Result, error) {
	body := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: BuildPrompt(text)},
		},
	}

	var parsed chatResponse
	res, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&parsed).
		Post("/chat/completions")
	if err != nil {
		return classifier.Result{}, errors.Wrap(err, "classification request failed")
	}
	if res.StatusCode() != http.StatusOK {
		g.logger.Error("Classification endpoint returned error",
			"status", res.StatusCode(), "body", res.String())
		return classifier.Result{}, errors.Wrap(errors.ErrServiceUnavailable,
			fmt.Sprintf("classification endpoint returned %d", res.StatusCode()))
	}
	if len(parsed.Choices) == 0 {
		return classifier.Result{}, errors.New("classification response had no choices")
	}

	result := ParseResult(parsed.Choices[0].Message.Content)
	g.logger.Info("Classified post", "label", result.Label)
	return result, nil
}

// ParseResult handles both reply shapes the model produces: a bare label as
// free text, or a {"label": ..., "reason": ...} JSON object.
func ParseResult(content string) classifier.Result {
	content = strings.TrimSpace(content)

	var structured struct {
		Label  string `json:"label"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(content), &structured); err == nil && structured.Label != "" {
		return classifier.Result{
			Label:  canonicalLabel(structured.Label),
			Reason: strings.TrimSpace(structured.Reason),
		}
	}

	return classifier.Result{Label: canonicalLabel(content)}
}

// canonicalLabel maps a free-text reply onto one of the known labels when the
// model wrapped it in extra prose. Unrecognized replies pass through as-is.
func canonicalLabel(s string) string {
	s = strings.TrimSpace(s)
	for _, label := range Labels {
		if strings.EqualFold(s, label) {
			return label
		}
	}
	for _, label := range Labels {
		if strings.Contains(strings.ToLower(s), strings.ToLower(label)) {
			return label
		}
	}
	return s
}
