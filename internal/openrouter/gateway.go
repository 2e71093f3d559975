package openrouter

import (
	"context"
	"fmt"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

// Gateway adapts the Client to the engine's Generator interface, routing
// each function class to its assigned model.
type Gateway struct {
	client    *Client
	models    map[discussion.FunctionClass]string
	proModels map[discussion.FunctionClass]string
	fallback  string
}

// NewGateway creates a gateway with per-function model assignments; the
// fallback model serves any unassigned function class.
func NewGateway(client *Client, models map[discussion.FunctionClass]string, fallback string) *Gateway {
	return &Gateway{
		client:   client,
		models:   models,
		fallback: fallback,
	}
}

// SetProModels assigns the models used for pro-tier calls.
func (g *Gateway) SetProModels(models map[discussion.FunctionClass]string) {
	g.proModels = models
}

// Generate implements discussion.Generator. The provider's token accounting
// is passed through when the response carries it.
func (g *Gateway) Generate(ctx context.Context, prompt string, class discussion.FunctionClass, tier discussion.Tier) (discussion.Completion, error) {
	model := g.modelFor(class, tier)
	resp, err := g.client.ChatCompletion(ctx, model, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		return discussion.Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return discussion.Completion{}, fmt.Errorf("openrouter: empty completion from model %s", model)
	}
	c := discussion.Completion{Content: resp.Choices[0].Message.Content}
	if resp.Usage != nil {
		c.InputTokens = resp.Usage.PromptTokens
		c.OutputTokens = resp.Usage.CompletionTokens
	}
	return c, nil
}

func (g *Gateway) modelFor(class discussion.FunctionClass, tier discussion.Tier) string {
	if tier == discussion.TierPro {
		if m, ok := g.proModels[class]; ok && m != "" {
			return m
		}
	}
	if m, ok := g.models[class]; ok && m != "" {
		return m
	}
	return g.fallback
}
