package scoring

import (
	"strings"
	"time"

	"github.com/tkhs0813/airdroplens/internal/models"
)

// hotCategories 空投热门类别 (case-insensitive set lookup).
var hotCategories = map[string]struct{}{
	"dexs":             {},
	"derivatives":      {},
	"yield":            {},
	"cdp":              {},
	"perpetuals":       {},
	"perps":            {},
	"cross-chain":      {},
	"privacy":          {},
	"yield aggregator": {},
	"lending":          {},
	"liquid staking":   {},
	"restaking":        {},
}

// pointsKeywords flag a loyalty/points program in the protocol description.
// Substring match, not whole-word. Japanese terms cover the descriptions the
// upstream listing carries for JP-market protocols.
var pointsKeywords = []string{
	"points",
	"airdrop program",
	"loyalty",
	"rewards program",
	"ポイント",
	"エアドロップ",
}

// isTokenless reports whether the protocol has no issued token: the ticker
// sentinel "-" (or absent) and no price-feed id on either tracker.
func isTokenless(p *models.Protocol) bool {
	if p.Symbol != "-" && p.Symbol != "" {
		return false
	}
	return p.GeckoID == nil && p.CmcID == nil
}

// hasPointsProgram reports whether the free-text description mentions a
// loyalty or points program.
func hasPointsProgram(p *models.Protocol) bool {
	if p.Description == "" {
		return false
	}
	desc := strings.ToLower(p.Description)
	for _, kw := range pointsKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// inferStage derives the project stage from round labels, falling back to
// the total amount raised. Label-based detection always wins over the
// amount heuristic when both are available.
func inferStage(rounds []models.FundingRound, totalFunding float64) models.ProjectStage {
	var hasSeriesA, hasSeed bool

	for _, round := range rounds {
		label := strings.ToLower(round.Round)
		switch {
		case strings.Contains(label, "series b"),
			strings.Contains(label, "series c"),
			strings.Contains(label, "series d"):
			return models.StageLate
		case strings.Contains(label, "series a"):
			hasSeriesA = true
		case strings.Contains(label, "seed"),
			strings.Contains(label, "pre-seed"),
			strings.Contains(label, "angel"):
			hasSeed = true
		}
	}

	if hasSeriesA {
		return models.StageSeriesA
	}
	if hasSeed {
		return models.StageSeed
	}

	switch {
	case totalFunding <= 0:
		return models.StageUnknown
	case totalFunding <= 5:
		return models.StageSeed
	case totalFunding <= 20:
		return models.StageSeriesA
	case totalFunding <= 50:
		return models.StageGrowth
	default:
		return models.StageLate
	}
}

const (
	hiddenGemMaxListingAge = 90 // days
	hiddenGemMinTVL        = 100_000.0
	hiddenGemMaxTVL        = 10_000_000.0
)

// isHiddenGem is the composite early-stage predicate: tokenless, listed
// within 90 days, seed or series-A stage, at least one tiered VC, and TVL
// inside [$100k, $10M]. Any failing condition short-circuits.
func isHiddenGem(tokenless bool, listedAt *time.Time, now time.Time, stage models.ProjectStage, inv investorBreakdown, tvl float64) bool {
	if !tokenless || listedAt == nil {
		return false
	}
	if now.Sub(*listedAt) > hiddenGemMaxListingAge*24*time.Hour {
		return false
	}
	if stage != models.StageSeed && stage != models.StageSeriesA {
		return false
	}
	if len(inv.tier1) == 0 && len(inv.tier2) == 0 {
		return false
	}
	return tvl >= hiddenGemMinTVL && tvl <= hiddenGemMaxTVL
}
