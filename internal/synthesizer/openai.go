package synthesizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

const systemPrompt = "You are a helpful assistant that answers questions about company policies. " +
	"Use only the provided context to answer questions. If you can't find the answer in the context, " +
	"say you don't know. Be concise and accurate."

// OpenAIClient generates answers through an OpenAI-compatible chat
// completions endpoint. Temperature is pinned to zero for consistent
// answers.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Synthesize(ctx context.Context, question string, scored []model.ScoredChunk) (string, error) {
	if len(scored) == 0 {
		return NoRelevantAnswer, nil
	}

	userPrompt := fmt.Sprintf(
		"Context from company policy documents:\n\n%s\n\nQuestion: %s\n\nAnswer based only on the context above:",
		buildContext(scored), question)

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperr.Wrap(apperr.KindSynthesis, err, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperr.Wrap(apperr.KindSynthesis, err, "failed to create chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", apperr.Wrap(apperr.KindSynthesis, err, "chat completion request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindSynthesis, err, "failed to read chat response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperr.New(apperr.KindSynthesis, "chat API error (status %d)", resp.StatusCode)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", apperr.Wrap(apperr.KindSynthesis, err, "failed to unmarshal chat response")
	}
	if len(chatResp.Choices) == 0 {
		return "", apperr.New(apperr.KindSynthesis, "no completion returned")
	}
	return chatResp.Choices[0].Message.Content, nil
}
