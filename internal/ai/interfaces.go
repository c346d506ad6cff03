package ai

import (
	"context"

	"github.com/tkhs0813/airdroplens/internal/models"
)

// Analyzer defines methods for AI-assisted research notes
type Analyzer interface {
	// SummarizeCandidates writes a short analyst-style note over the top
	// scored candidates, highlighting which ones deserve manual research.
	SummarizeCandidates(ctx context.Context, scores []models.AirdropScore) (*ResearchNote, error)
}

// ResearchNote 候选项目研究笔记
type ResearchNote struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Cautions   []string `json:"cautions"`
}
