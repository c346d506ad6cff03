package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/tkhs0813/airdroplens/internal/ai"
	"github.com/tkhs0813/airdroplens/internal/models"
)

// OpenAIAnalyzer implements the Analyzer interface using OpenAI
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer creates a new OpenAI analyzer instance
func NewOpenAIAnalyzer(apiKey string, model string) *OpenAIAnalyzer {
	client := openai.NewClient(apiKey)
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAIAnalyzer{
		client: client,
		model:  model,
	}
}

// SummarizeCandidates implements the Analyzer interface
func (a *OpenAIAnalyzer) SummarizeCandidates(ctx context.Context, scores []models.AirdropScore) (*ai.ResearchNote, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("no scored candidates provided")
	}

	var sb strings.Builder
	for i := range scores {
		s := &scores[i]
		fmt.Fprintf(&sb, "- %s (score %d): tvl=%.0f, category=%s, stage=%s, tokenless=%t, points=%t, funding=$%.1fM, tier1=%s, hidden_gem=%t\n",
			s.ProtocolName, s.TotalScore, s.TVL, s.Category, s.ProjectStage,
			s.IsTokenless, s.HasPoints, s.FundingAmount,
			strings.Join(s.Tier1VCs, "/"), s.IsHiddenGem)
	}

	prompt := fmt.Sprintf(`The following DeFi protocols were ranked by a heuristic airdrop-potential score:
%s
Write a short research note for an airdrop hunter. Point out which candidates
look most promising and why, and which scores are likely inflated by weak
signals (e.g. substring-matched investors or a single large raise).

Output JSON:
{
    "summary": string,
    "highlights": [string, ...],
    "cautions": [string, ...]
}`, sb.String())

	resp, err := a.createChatCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize candidates: %w", err)
	}

	var note ai.ResearchNote
	if err := json.Unmarshal([]byte(resp), &note); err != nil {
		return nil, fmt.Errorf("failed to parse research note: %w", err)
	}

	return &note, nil
}

// createChatCompletion is a helper function to make OpenAI API calls
func (a *OpenAIAnalyzer) createChatCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a crypto research analyst specializing in airdrop farming and early-stage DeFi protocols. Always respond with JSON.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
