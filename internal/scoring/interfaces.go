package scoring

import (
	"github.com/tkhs0813/airdroplens/internal/models"
)

// Scorer computes airdrop potential scores over a fixed protocol and
// funding-round snapshot. Implementations must be safe for concurrent use
// once constructed.
type Scorer interface {
	// ScoreProtocol scores a single protocol. It never fails: missing
	// optional fields degrade to the zero-point branch of each rule.
	ScoreProtocol(p models.Protocol) models.AirdropScore

	// ScoreAll scores every protocol at or above the TVL floor, excluding
	// centralized exchanges, sorted by (total score, TVL) descending.
	ScoreAll(minTVL float64) []models.AirdropScore

	// TopTokenless returns the highest scoring tokenless protocols.
	TopTokenless(limit int, minTVL float64) []models.AirdropScore

	// VCBacked returns the highest scoring protocols with at least one
	// tier-1 or tier-2 investor.
	VCBacked(limit int, minTVL float64) []models.AirdropScore

	// AirdropVCBacked returns the highest scoring protocols backed by a
	// high-airdrop-rate fund.
	AirdropVCBacked(limit int, minTVL float64) []models.AirdropScore

	// HiddenGems returns the highest scoring protocols matching the
	// hidden-gem predicate.
	HiddenGems(limit int, minTVL float64) []models.AirdropScore
}
