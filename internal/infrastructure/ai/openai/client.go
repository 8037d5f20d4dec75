// Package openai implements the completion client against an
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/config"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// Client talks to the chat completions API. Without an API key it
// answers with canned text so the app stays usable in development.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a completion client from configuration.
func NewClient(cfg *config.AIConfig, logger *zap.Logger) *Client {
	if cfg.APIKey == "" {
		logger.Warn("No completion API key configured, answering with canned replies")
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.Named("openai"),
	}
}

var _ outbound.CompletionClient = (*Client)(nil)

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Chat answers a general nutrition question. The thread token keeps
// multi-turn context; a fresh token is minted for new conversations.
func (c *Client) Chat(ctx context.Context, msg, threadID string) (*outbound.ChatReply, error) {
	if threadID == "" {
		threadID = "thread-" + uuid.NewString()
	}

	if c.apiKey == "" {
		return &outbound.ChatReply{Text: cannedChatReply, ThreadID: threadID}, nil
	}

	text, err := c.complete(ctx, chatSystemPrompt, msg, 0.7, 1200)
	if err != nil {
		return nil, err
	}
	return &outbound.ChatReply{Text: text, ThreadID: threadID}, nil
}

// AskAboutRecipe answers a question with the full recipe as context.
func (c *Client) AskAboutRecipe(ctx context.Context, r *recipe.Recipe, question string) (string, error) {
	if c.apiKey == "" {
		return cannedRecipeReply, nil
	}
	return c.complete(ctx, recipeSystemPrompt(r), question, 0.7, 1000)
}

// AdjustServings rescales the ingredient list to a new serving count.
func (c *Client) AdjustServings(ctx context.Context, r *recipe.Recipe, newServings int) (string, error) {
	if c.apiKey == "" {
		return cannedRecipeReply, nil
	}
	return c.complete(ctx, recipeSystemPrompt(r), adjustServingsPrompt(r, newServings), 0.3, 800)
}

// SubstituteIngredients suggests replacements keeping the recipe
// gluten and lactose free as declared.
func (c *Client) SubstituteIngredients(ctx context.Context, r *recipe.Recipe, ingredients []string, reason string) (string, error) {
	if c.apiKey == "" {
		return cannedRecipeReply, nil
	}
	return c.complete(ctx, recipeSystemPrompt(r), substitutePrompt(r, ingredients, reason), 0.5, 1000)
}

// CalculateNutrition estimates per-serving nutritional values.
func (c *Client) CalculateNutrition(ctx context.Context, r *recipe.Recipe) (string, error) {
	if c.apiKey == "" {
		return cannedRecipeReply, nil
	}
	return c.complete(ctx, recipeSystemPrompt(r), nutritionPrompt(r), 0.3, 1000)
}

// ConvertUnits converts measures in the ingredient list.
func (c *Client) ConvertUnits(ctx context.Context, r *recipe.Recipe, fromUnit, toUnit, amount string) (string, error) {
	if c.apiKey == "" {
		return cannedRecipeReply, nil
	}
	return c.complete(ctx, recipeSystemPrompt(r), convertUnitsPrompt(fromUnit, toUnit, amount), 0.3, 800)
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	c.logger.Debug("Completion call succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)
	return chatResp.Choices[0].Message.Content, nil
}
