// Package assistant proposes initial business models through a
// conversational language-model interface. Proposals are ordinary model data:
// the engine treats them exactly like manually entered input.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/constants"
)

// Message is one turn of the onboarding conversation.
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// Environment is a complete proposed business model plus projection defaults.
type Environment struct {
	Products          []model.Product           `json:"products"`
	SetupCosts        []model.SetupCost         `json:"setup_costs"`
	FixedCosts        []model.FixedCost         `json:"fixed_costs"`
	SemiVariableCosts []model.SemiVariableCost  `json:"semi_variable_costs"`
	VariableCosts     []model.VariableCost      `json:"variable_costs"`
	Marketing         model.MarketingCosts      `json:"marketing_costs"`
	ProjectionDefault *model.ProjectionSettings `json:"projection_defaults,omitempty"`
	Insights          []string                  `json:"insights,omitempty"`
}

// BusinessModel converts the proposal into the engine's input structure.
func (e *Environment) BusinessModel() model.BusinessModel {
	return model.BusinessModel{
		Products:          e.Products,
		SetupCosts:        e.SetupCosts,
		FixedCosts:        e.FixedCosts,
		SemiVariableCosts: e.SemiVariableCosts,
		VariableCosts:     e.VariableCosts,
		Marketing:         e.Marketing,
	}
}

// Client wraps the Gemini API for onboarding chat and environment generation.
type Client struct {
	genai  *genai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates an assistant client. If logger is nil, it will use a
// no-op logger to prevent panics.
func NewClient(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("assistant API key not set")
	}
	if modelName == "" {
		modelName = constants.DefaultAssistantModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{genai: client, model: modelName, logger: logger}, nil
}

// Chat produces one conversational reply for the onboarding flow.
func (c *Client) Chat(ctx context.Context, businessType *model.BusinessType, messages []Message) (string, error) {
	var transcript strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&transcript, "%s: %s\n", m.Role, m.Content)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.7)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt(businessType)}},
		},
	}

	result, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(transcript.String()), config)
	if err != nil {
		return "", fmt.Errorf("assistant chat failed: %w", err)
	}

	c.logger.Debug("assistant reply generated",
		zap.String("op", "assistant.Chat"),
		zap.Int("messages", len(messages)),
	)
	return result.Text(), nil
}

// GenerateEnvironment asks the model for a complete business-model proposal
// based on the business type and the user's onboarding answers.
func (c *Client) GenerateEnvironment(ctx context.Context, businessType *model.BusinessType, answers map[string]string) (*Environment, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.7)),
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt(businessType)}},
		},
	}

	result, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(generationPrompt(businessType, answers)), config)
	if err != nil {
		return nil, fmt.Errorf("environment generation failed: %w", err)
	}

	env, err := parseEnvironment(result.Text())
	if err != nil {
		return nil, err
	}

	c.logger.Info("environment generated",
		zap.String("op", "assistant.GenerateEnvironment"),
		zap.Int("products", len(env.Products)),
		zap.Int("fixedCosts", len(env.FixedCosts)),
	)
	return env, nil
}

// parseEnvironment decodes a model response into an Environment. Language
// models routinely emit slightly broken JSON (markdown fences, trailing
// commas), so the raw text goes through json-repair before unmarshalling.
// Missing ids are backfilled and all numerics sanitized.
func parseEnvironment(raw string) (*Environment, error) {
	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to repair assistant JSON: %w", err)
	}

	var env Environment
	if err := json.Unmarshal([]byte(repaired), &env); err != nil {
		return nil, fmt.Errorf("failed to decode assistant JSON: %w", err)
	}

	backfillIDs(&env)

	sanitized := env.BusinessModel()
	sanitized.Sanitize()
	env.Products = sanitized.Products
	env.SetupCosts = sanitized.SetupCosts
	env.FixedCosts = sanitized.FixedCosts
	env.SemiVariableCosts = sanitized.SemiVariableCosts
	env.VariableCosts = sanitized.VariableCosts
	env.Marketing = sanitized.Marketing

	return &env, nil
}

func backfillIDs(env *Environment) {
	for i := range env.Products {
		if env.Products[i].ID == "" {
			env.Products[i].ID = model.NewID()
		}
	}
	for i := range env.SetupCosts {
		if env.SetupCosts[i].ID == "" {
			env.SetupCosts[i].ID = model.NewID()
		}
	}
	for i := range env.FixedCosts {
		if env.FixedCosts[i].ID == "" {
			env.FixedCosts[i].ID = model.NewID()
		}
	}
	for i := range env.SemiVariableCosts {
		if env.SemiVariableCosts[i].ID == "" {
			env.SemiVariableCosts[i].ID = model.NewID()
		}
	}
	for i := range env.VariableCosts {
		if env.VariableCosts[i].ID == "" {
			env.VariableCosts[i].ID = model.NewID()
		}
	}
	for i := range env.Marketing.Fixed {
		if env.Marketing.Fixed[i].ID == "" {
			env.Marketing.Fixed[i].ID = model.NewID()
		}
	}
	for i := range env.Marketing.PerUnit {
		if env.Marketing.PerUnit[i].ID == "" {
			env.Marketing.PerUnit[i].ID = model.NewID()
		}
	}
	for i := range env.Marketing.PercentRevenue {
		if env.Marketing.PercentRevenue[i].ID == "" {
			env.Marketing.PercentRevenue[i].ID = model.NewID()
		}
	}
}
