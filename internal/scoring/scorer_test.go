package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkhs0813/airdroplens/internal/models"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(protocols []models.Protocol, raises []models.FundingRound) *Engine {
	engine := NewEngine(protocols, raises)
	engine.nowFunc = func() time.Time { return testNow }
	return engine
}

func unixDaysAgo(days int) *int64 {
	ts := testNow.AddDate(0, 0, -days).Unix()
	return &ts
}

func floatptr(v float64) *float64 { return &v }

func TestEngine_ScoreProtocol(t *testing.T) {
	// Tokenless lending protocol, listed 20 days ago, one $12M round led by
	// Paradigm, 25% weekly TVL growth.
	change := 25.0
	p := models.Protocol{
		ID:       "100",
		Name:     "Lendora",
		Slug:     "lendora",
		Symbol:   "-",
		TVL:      5_000_000,
		Change7d: &change,
		Category: "Lending",
		Chains:   []string{"Ethereum"},
		ListedAt: unixDaysAgo(20),
	}
	raises := []models.FundingRound{
		{Name: "Lendora", Amount: floatptr(12), Date: 1700000000, LeadInvestors: []string{"Paradigm"}},
	}

	engine := newTestEngine([]models.Protocol{p}, raises)
	score := engine.ScoreProtocol(p)

	assert.Equal(t, 12, score.TokenlessScore)
	assert.Equal(t, 0, score.PointsScore)
	assert.Equal(t, 0, score.AirdropVCScore)
	assert.Equal(t, 9, score.FundingScore) // $12M >= 10
	assert.Equal(t, 5, score.Tier1VCScore) // one tier-1 investor
	assert.Equal(t, 0, score.Tier2VCScore)
	assert.Equal(t, 10, score.RecencyScore) // 20 days <= 30
	assert.Equal(t, 5, score.StageScore)    // $12M infers series_a
	assert.Equal(t, 5, score.TVLGrowthScore)
	assert.Equal(t, 5, score.CategoryScore) // lending is hot
	assert.Equal(t, 0, score.TVLRangeScore) // $5M outside sweet spot
	assert.Equal(t, 10, score.HiddenGemScore)

	assert.True(t, score.IsTokenless)
	assert.True(t, score.IsHiddenGem)
	assert.Equal(t, models.StageSeriesA, score.ProjectStage)
	assert.Equal(t, []string{"Paradigm"}, score.Tier1VCs)
	assert.Equal(t, 12.0, score.FundingAmount)
	assert.Equal(t, 61, score.TotalScore)
}

func TestEngine_ScoreProtocol_TotalIsSumOfParts(t *testing.T) {
	protocols := []models.Protocol{
		{Name: "Bare"},
		{Name: "Ticker", Symbol: "TKR", TVL: 50_000_000, Category: "Dexs", Change7d: floatptr(60)},
		{Name: "Fresh", Symbol: "-", TVL: 2_000_000, ListedAt: unixDaysAgo(5), Description: "loyalty points for LPs"},
		{Name: "Old", Symbol: "OLD", TVL: 900_000_000, ListedAt: unixDaysAgo(900), Change7d: floatptr(-12)},
	}
	raises := []models.FundingRound{
		{Name: "Fresh", Amount: floatptr(3), Date: 1, Round: "Seed", LeadInvestors: []string{"Dragonfly", "a16z", "Multicoin"}},
		{Name: "Old", Amount: floatptr(200), Date: 2, Round: "Series C", OtherInvestors: []string{"Hashed", "GSR"}},
	}

	engine := newTestEngine(protocols, raises)

	for _, p := range protocols {
		score := engine.ScoreProtocol(p)

		sum := 0
		for _, sub := range score.SubScores() {
			sum += sub
			assert.GreaterOrEqual(t, sub, 0, "%s: sub-score must not be negative", p.Name)
		}
		assert.Equal(t, sum, score.TotalScore, "%s: total must equal sum of parts", p.Name)
	}
}

func TestEngine_ScoreProtocol_SubScoreCaps(t *testing.T) {
	// Everything maxed except tier2 (suppressed by tier1 matches).
	p := models.Protocol{
		Name:        "Maxed",
		Symbol:      "-",
		TVL:         50_000_000,
		Change7d:    floatptr(80),
		Category:    "Perps",
		ListedAt:    unixDaysAgo(10),
		Description: "airdrop program live",
	}
	raises := []models.FundingRound{
		{Name: "Maxed", Amount: floatptr(60), Date: 1, Round: "Seed",
			LeadInvestors:  []string{"a16z", "Paradigm", "Multicoin"},
			OtherInvestors: []string{"Dragonfly"}},
	}

	engine := newTestEngine([]models.Protocol{p}, raises)
	score := engine.ScoreProtocol(p)

	assert.Equal(t, 12, score.TokenlessScore)
	assert.Equal(t, 15, score.PointsScore)
	assert.Equal(t, 13, score.AirdropVCScore)
	assert.Equal(t, 15, score.FundingScore)
	assert.Equal(t, 12, score.Tier1VCScore)
	assert.Equal(t, 0, score.Tier2VCScore)
	assert.Equal(t, 10, score.RecencyScore)
	assert.Equal(t, 10, score.StageScore)
	assert.Equal(t, 8, score.TVLGrowthScore)
	assert.Equal(t, 5, score.CategoryScore)
	assert.Equal(t, 7, score.TVLRangeScore)
	// TVL $50M is outside the hidden-gem band, so the 125-point ceiling is
	// not reachable together with the sweet-spot bonus.
	assert.Equal(t, 0, score.HiddenGemScore)
	assert.Equal(t, 107, score.TotalScore)
}

func TestEngine_ScoreProtocol_Tier2OnlyWhenNoTier1(t *testing.T) {
	raises := []models.FundingRound{
		{Name: "Duo", Amount: floatptr(2), Date: 1,
			LeadInvestors: []string{"Paradigm"}, OtherInvestors: []string{"Hashed", "Nascent"}},
	}
	engine := newTestEngine(nil, raises)

	score := engine.ScoreProtocol(models.Protocol{Name: "Duo", Symbol: "X"})

	assert.Equal(t, 5, score.Tier1VCScore)
	assert.Equal(t, 0, score.Tier2VCScore, "tier-2 points only awarded with zero tier-1 matches")
	assert.Len(t, score.Tier2VCs, 2, "tier-2 list itself is still populated")
}

func TestEngine_ScoreProtocol_Idempotent(t *testing.T) {
	p := models.Protocol{
		Name: "Stable", Symbol: "-", TVL: 1_500_000,
		Category: "Yield", ListedAt: unixDaysAgo(45),
	}
	raises := []models.FundingRound{
		{Name: "Stable", Amount: floatptr(8), Date: 9, Round: "Seed", LeadInvestors: []string{"Hack VC"}},
	}
	engine := newTestEngine([]models.Protocol{p}, raises)

	first := engine.ScoreProtocol(p)
	second := engine.ScoreProtocol(p)

	assert.Equal(t, first, second)
}

func TestEngine_ScoreProtocol_MissingFields(t *testing.T) {
	engine := newTestEngine(nil, nil)

	score := engine.ScoreProtocol(models.Protocol{})

	assert.Equal(t, "Unknown", score.ProtocolName)
	assert.Equal(t, "Unknown", score.Category)
	assert.Equal(t, models.StageUnknown, score.ProjectStage)
	assert.Equal(t, 0, score.FundingScore)
	assert.Equal(t, 0, score.RecencyScore)
	assert.Equal(t, 0, score.TVLGrowthScore)
	// An empty protocol is still tokenless by the sentinel rule.
	assert.Equal(t, 12, score.TotalScore)
}

func TestEngine_ScoreAll(t *testing.T) {
	protocols := []models.Protocol{
		{Name: "Tiny", Symbol: "-", TVL: 50_000},                         // below floor
		{Name: "Exchange", Symbol: "EXC", TVL: 5_000_000, Category: "CEX"}, // excluded
		{Name: "Low", Symbol: "LOW", TVL: 200_000},
		{Name: "HighScore", Symbol: "-", TVL: 300_000, Category: "Dexs"},
		{Name: "SameScoreBigger", Symbol: "LOW2", TVL: 900_000},
	}

	engine := newTestEngine(protocols, nil)
	scores := engine.ScoreAll(DefaultMinTVL)

	require.Len(t, scores, 3)
	names := []string{scores[0].ProtocolName, scores[1].ProtocolName, scores[2].ProtocolName}
	assert.Equal(t, []string{"HighScore", "SameScoreBigger", "Low"}, names)

	for i := 1; i < len(scores); i++ {
		if scores[i-1].TotalScore == scores[i].TotalScore {
			assert.GreaterOrEqual(t, scores[i-1].TVL, scores[i].TVL, "TVL is the tiebreaker")
		} else {
			assert.Greater(t, scores[i-1].TotalScore, scores[i].TotalScore)
		}
	}
}

func TestEngine_ScoreAll_CEXCaseInsensitive(t *testing.T) {
	protocols := []models.Protocol{
		{Name: "Big Exchange", Symbol: "BE", TVL: 10_000_000_000, Category: "Cex"},
	}
	engine := newTestEngine(protocols, nil)

	assert.Empty(t, engine.ScoreAll(DefaultMinTVL))
}

func TestEngine_Views(t *testing.T) {
	protocols := []models.Protocol{
		{Name: "Tokenless A", Symbol: "-", TVL: 500_000},
		{Name: "Tokenless B", Symbol: "-", TVL: 400_000},
		{Name: "Backed", Symbol: "BCK", TVL: 600_000},
		{Name: "AirdropBacked", Symbol: "ADB", TVL: 700_000},
		{Name: "Gem", Symbol: "-", TVL: 800_000, ListedAt: unixDaysAgo(15)},
	}
	raises := []models.FundingRound{
		{Name: "Backed", Amount: floatptr(4), Date: 1, OtherInvestors: []string{"Hashed"}},
		{Name: "AirdropBacked", Amount: floatptr(4), Date: 2, LeadInvestors: []string{"Robot Ventures"}},
		{Name: "Gem", Amount: floatptr(3), Date: 3, Round: "Seed", LeadInvestors: []string{"Paradigm"}},
	}
	engine := newTestEngine(protocols, raises)

	t.Run("tokenless view", func(t *testing.T) {
		got := engine.TopTokenless(2, DefaultMinTVL)

		require.Len(t, got, 2)
		for _, s := range got {
			assert.True(t, s.IsTokenless)
		}
	})

	t.Run("vc backed view", func(t *testing.T) {
		got := engine.VCBacked(10, DefaultMinTVL)

		require.Len(t, got, 3)
		for _, s := range got {
			assert.True(t, len(s.Tier1VCs) > 0 || len(s.Tier2VCs) > 0)
		}
	})

	t.Run("airdrop vc view", func(t *testing.T) {
		got := engine.AirdropVCBacked(10, DefaultMinTVL)

		require.Len(t, got, 1)
		assert.Equal(t, "AirdropBacked", got[0].ProtocolName)
	})

	t.Run("hidden gems view", func(t *testing.T) {
		got := engine.HiddenGems(10, DefaultMinTVL)

		require.Len(t, got, 1)
		assert.Equal(t, "Gem", got[0].ProtocolName)
		assert.True(t, got[0].IsHiddenGem)
	})

	t.Run("zero limit returns all matches", func(t *testing.T) {
		got := engine.TopTokenless(0, DefaultMinTVL)
		assert.Len(t, got, 3)
	})
}

func TestFundingScore(t *testing.T) {
	tests := []struct {
		amount float64
		want   int
	}{
		{amount: 120, want: 15},
		{amount: 50, want: 15},
		{amount: 20, want: 12},
		{amount: 10, want: 9},
		{amount: 5, want: 6},
		{amount: 1, want: 3},
		{amount: 0.5, want: 0},
		{amount: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fundingScore(tt.amount), "amount %.1f", tt.amount)
	}
}

func TestRecencyScore(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{days: 0, want: 10},
		{days: 30, want: 10},
		{days: 31, want: 7},
		{days: 90, want: 7},
		{days: 180, want: 4},
		{days: 365, want: 2},
		{days: 366, want: 0},
	}

	for _, tt := range tests {
		listed := testNow.AddDate(0, 0, -tt.days)
		assert.Equal(t, tt.want, recencyScore(&listed, testNow), "%d days", tt.days)
	}

	assert.Equal(t, 0, recencyScore(nil, testNow))
}

func TestGrowthScore(t *testing.T) {
	tests := []struct {
		change *float64
		want   int
	}{
		{change: floatptr(75), want: 8},
		{change: floatptr(50), want: 8},
		{change: floatptr(20), want: 5},
		{change: floatptr(10), want: 3},
		{change: floatptr(5), want: 0},
		{change: floatptr(-30), want: 0},
		{change: nil, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, growthScore(tt.change))
	}
}
