package data

import (
	"context"
	"errors"
	"time"

	"github.com/tkhs0813/airdroplens/internal/models"
)

// ErrNoData marks an upstream response that was fetched successfully but
// carried no records. Callers distinguish it from transport failures with
// errors.Is.
var ErrNoData = errors.New("no data available")

// DataCollector 负责从数据源拉取协议和融资数据
type DataCollector interface {
	// GetProtocols retrieves the bulk protocol listing.
	GetProtocols(ctx context.Context) ([]models.Protocol, error)

	// GetRaises retrieves the bulk funding-round listing.
	GetRaises(ctx context.Context) ([]models.FundingRound, error)

	// ClearCache drops any locally cached responses.
	ClearCache() error
}

// DataStorage 处理评分快照的持久化
type DataStorage interface {
	// SaveScores persists one scoring run and its per-protocol rows.
	SaveScores(ctx context.Context, generatedAt time.Time, scores []models.AirdropScore) error

	// GetLatestScores retrieves the most recent run's top rows, ordered by
	// total score descending.
	GetLatestScores(ctx context.Context, limit int) ([]models.AirdropScore, error)

	// Close releases the underlying connection pool.
	Close() error
}
