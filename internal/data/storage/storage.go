package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tkhs0813/airdroplens/internal/models"

	_ "github.com/lib/pq"
)

// PostgresStorage persists scoring runs so researchers can compare how a
// protocol's score moves between data refreshes.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(connStr string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStorage{db: db}

	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// SaveScores implements the data.DataStorage interface. One run row plus
// one row per scored protocol, written in a single transaction.
func (s *PostgresStorage) SaveScores(ctx context.Context, generatedAt time.Time, scores []models.AirdropScore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO score_runs (generated_at, protocol_count) VALUES ($1, $2) RETURNING id`,
		generatedAt, len(scores),
	).Scan(&runID)
	if err != nil {
		return fmt.Errorf("failed to insert score run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO airdrop_scores (
            run_id, protocol_name, protocol_slug, total_score, tvl,
            tvl_change_7d, category, is_tokenless, has_points,
            project_stage, is_hidden_gem, funding_amount, listed_at, breakdown
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare score insert: %w", err)
	}
	defer stmt.Close()

	for i := range scores {
		sc := &scores[i]

		breakdown, err := json.Marshal(sc)
		if err != nil {
			return fmt.Errorf("failed to encode score for %s: %w", sc.ProtocolSlug, err)
		}

		var listedAt sql.NullTime
		if sc.ListedAt != nil {
			listedAt = sql.NullTime{Time: *sc.ListedAt, Valid: true}
		}
		var change sql.NullFloat64
		if sc.TVLChange7d != nil {
			change = sql.NullFloat64{Float64: *sc.TVLChange7d, Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			runID,
			sc.ProtocolName,
			sc.ProtocolSlug,
			sc.TotalScore,
			sc.TVL,
			change,
			sc.Category,
			sc.IsTokenless,
			sc.HasPoints,
			string(sc.ProjectStage),
			sc.IsHiddenGem,
			sc.FundingAmount,
			listedAt,
			breakdown,
		)
		if err != nil {
			return fmt.Errorf("failed to save score for %s: %w", sc.ProtocolSlug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit score run: %w", err)
	}

	return nil
}

// GetLatestScores implements the data.DataStorage interface.
func (s *PostgresStorage) GetLatestScores(ctx context.Context, limit int) ([]models.AirdropScore, error) {
	query := `
        SELECT a.breakdown
        FROM airdrop_scores a
        JOIN score_runs r ON a.run_id = r.id
        WHERE r.id = (SELECT MAX(id) FROM score_runs)
        ORDER BY a.total_score DESC, a.tvl DESC
        LIMIT $1
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest scores: %w", err)
	}
	defer rows.Close()

	var result []models.AirdropScore
	for rows.Next() {
		var breakdown []byte
		if err := rows.Scan(&breakdown); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}

		var score models.AirdropScore
		if err := json.Unmarshal(breakdown, &score); err != nil {
			return nil, fmt.Errorf("failed to decode score row: %w", err)
		}
		result = append(result, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score rows: %w", err)
	}

	if len(result) == 0 {
		return nil, errors.New("no score runs recorded")
	}

	return result, nil
}

// Close implements the data.DataStorage interface.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS score_runs (
			id SERIAL PRIMARY KEY,
			generated_at TIMESTAMP NOT NULL,
			protocol_count INT NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS airdrop_scores (
			id SERIAL PRIMARY KEY,
			run_id INT NOT NULL REFERENCES score_runs(id),
			protocol_name VARCHAR(200) NOT NULL,
			protocol_slug VARCHAR(200),
			total_score INT NOT NULL,
			tvl NUMERIC(20, 2),
			tvl_change_7d NUMERIC(10, 4),
			category VARCHAR(100),
			is_tokenless BOOLEAN,
			has_points BOOLEAN,
			project_stage VARCHAR(20),
			is_hidden_gem BOOLEAN,
			funding_amount NUMERIC(12, 2),
			listed_at TIMESTAMP,
			breakdown JSONB
		)`,

		`CREATE INDEX IF NOT EXISTS idx_airdrop_scores_run_score
			ON airdrop_scores (run_id, total_score DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}
