// Package llmclient wraps the OpenAI chat completions API for the two
// LLM-driven components of the import pipeline: taxonomy discovery and
// batch category assignment. The client is intrinsically single-flight —
// callers share one instance and the package serializes calls with a
// mutex plus a minimum gap between requests, matching the sequential LLM
// access the pipeline requires.
package llmclient

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lysyi3m/bookmark-comb/internal/corerrors"
)

const (
	discoveryTemperature = 0.7
	discoveryMaxTokens   = 16000
	assignTemperature    = 0.2
	assignMaxTokens      = 4096

	// minCallGap is the spacing enforced between sequential calls to
	// respect provider rate limits.
	minCallGap = 100 * time.Millisecond
)

// Client serializes chat completion calls against a single OpenAI-
// compatible endpoint.
type Client struct {
	client   *openai.Client
	model    string
	mu       sync.Mutex
	lastCall time.Time
}

// New builds a Client, or returns (nil, false) when no API key is
// configured — callers treat a nil client as "LLM unavailable" and take
// the deterministic fallback path without ever dialing out.
func New(apiKey, baseURL, model string) (*Client, bool) {
	if apiKey == "" {
		return nil, false
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}, true
}

// Complete sends a single user prompt with a system preamble and
// deterministic generation settings, enforcing the minimum inter-call gap.
// It returns corerrors.ErrLLMUnavailable for any transport error, non-OK
// status, or empty candidate — never a raw client error.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gap := minCallGap - time.Since(c.lastCall); gap > 0 {
		select {
		case <-time.After(gap):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", corerrors.ErrCancelled, ctx.Err())
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(c.model),
		Temperature: openai.F(temperature),
		MaxTokens:   openai.F(int64(maxTokens)),
	})
	c.lastCall = time.Now()

	if err != nil {
		return "", fmt.Errorf("%w: %v", corerrors.ErrLLMUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", corerrors.ErrLLMUnavailable)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", corerrors.ErrLLMUnavailable)
	}

	return stripFences(content), nil
}

// CompleteForDiscovery calls Complete with the taxonomy-discovery
// generation settings spec.md §4.6 names.
func (c *Client) CompleteForDiscovery(ctx context.Context, system, prompt string) (string, error) {
	return c.Complete(ctx, system, prompt, discoveryMaxTokens, discoveryTemperature)
}

// CompleteForAssignment calls Complete with lower-temperature settings
// suited to the closed-form index-mapping output batch assignment needs.
func (c *Client) CompleteForAssignment(ctx context.Context, system, prompt string) (string, error) {
	return c.Complete(ctx, system, prompt, assignMaxTokens, assignTemperature)
}

func stripFences(s string) string {
	s = strings.TrimPrefix(s, "```json\n")
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```\n")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "\n```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
