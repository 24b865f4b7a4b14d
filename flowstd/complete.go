package flowstd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/flowforge/flowrun/flow"
)

// Complete sends its single string input to Claude as a user message and
// outputs the model's text response. It has no Rust original — the
// original_source standard library predates LLM-completion nodes entirely —
// so it's a SPEC_FULL.md addition wiring the teacher's largest otherwise
// unused dependency surface (graph/model/anthropic) into a flow leaf.
//
// Grounded on the teacher's graph/model/anthropic.ChatModel: same split
// between the public type and a private, mockable completionClient
// interface, same defaultClient wrapping anthropicsdk.NewClient, same
// MaxTokens default and TextBlock-only response handling (tool calls and
// system prompts are out of scope for this single-string leaf).
type Complete struct {
	modelName string
	client    completionClient
}

// completionClient is the seam tests substitute, mirroring the teacher's
// anthropicClient interface in graph/model/anthropic/anthropic.go.
type completionClient interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// NewComplete constructs a Complete implementation calling Anthropic's
// Messages API with apiKey. An empty modelName defaults to Claude Sonnet,
// matching the teacher's NewChatModel default.
func NewComplete(apiKey, modelName string) *Complete {
	if modelName == "" {
		modelName = "claude-sonnet-4-5-20250929"
	}
	return &Complete{
		modelName: modelName,
		client:    &defaultCompletionClient{apiKey: apiKey, modelName: modelName},
	}
}

func (c *Complete) Run(id flow.ProcessID, inputs [][]json.RawMessage, sender flow.ResultSender) {
	value, ok := firstValue(inputs[0])
	if !ok {
		silent(sender, id, true)
		return
	}

	var prompt string
	if err := json.Unmarshal(value, &prompt); err != nil {
		silent(sender, id, true)
		return
	}

	text, err := c.client.complete(context.Background(), prompt)
	if err != nil {
		silent(sender, id, true)
		return
	}

	out, _ := json.Marshal(text)
	done(sender, id, out, true)
}

type defaultCompletionClient struct {
	apiKey    string
	modelName string
}

func (c *defaultCompletionClient) complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("flowstd: complete requires an Anthropic API key")
	}

	client := anthropicsdk.NewClient(option.WithAPIKey(c.apiKey))
	resp, err := client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(c.modelName),
		MaxTokens: 4096,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("flowstd: anthropic completion: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropicsdk.TextBlock); ok {
			text += tb.Text
		}
	}
	return text, nil
}
