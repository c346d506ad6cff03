package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tkhs0813/airdroplens/internal/models"
)

func strptr(s string) *string { return &s }

func TestIsTokenless(t *testing.T) {
	tests := []struct {
		name     string
		protocol models.Protocol
		want     bool
	}{
		{
			name:     "no symbol and no price feeds",
			protocol: models.Protocol{Symbol: "-"},
			want:     true,
		},
		{
			name:     "absent symbol counts as sentinel",
			protocol: models.Protocol{},
			want:     true,
		},
		{
			name:     "has ticker",
			protocol: models.Protocol{Symbol: "UNI"},
			want:     false,
		},
		{
			name:     "gecko id implies token",
			protocol: models.Protocol{Symbol: "-", GeckoID: strptr("uniswap")},
			want:     false,
		},
		{
			name:     "cmc id implies token",
			protocol: models.Protocol{Symbol: "-", CmcID: &models.FlexID{Value: "7083"}},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTokenless(&tt.protocol))
		})
	}
}

func TestHasPointsProgram(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want bool
	}{
		{name: "points keyword", desc: "Earn Points by providing liquidity", want: true},
		{name: "airdrop program keyword", desc: "our airdrop program rewards early users", want: true},
		{name: "loyalty keyword", desc: "Loyalty rewards for stakers", want: true},
		{name: "substring not whole word", desc: "checkpointsystem enabled", want: true},
		{name: "japanese keyword", desc: "流動性提供でポイントが貯まる", want: true},
		{name: "no keyword", desc: "A lending protocol on Ethereum", want: false},
		{name: "empty description", desc: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Protocol{Description: tt.desc}
			assert.Equal(t, tt.want, hasPointsProgram(&p))
		})
	}
}

func TestInferStage(t *testing.T) {
	labeled := func(labels ...string) []models.FundingRound {
		rounds := make([]models.FundingRound, len(labels))
		for i, l := range labels {
			rounds[i] = models.FundingRound{Round: l}
		}
		return rounds
	}

	tests := []struct {
		name    string
		rounds  []models.FundingRound
		funding float64
		want    models.ProjectStage
	}{
		{name: "series b label wins", rounds: labeled("Series B"), funding: 3, want: models.StageLate},
		{name: "series c label wins", rounds: labeled("Seed", "Series C"), funding: 3, want: models.StageLate},
		{name: "series a label", rounds: labeled("Series A"), funding: 3, want: models.StageSeriesA},
		{name: "label beats large amount", rounds: labeled("Series A"), funding: 80, want: models.StageSeriesA},
		{name: "seed label", rounds: labeled("Seed Round"), funding: 30, want: models.StageSeed},
		{name: "pre-seed label", rounds: labeled("Pre-Seed"), funding: 1, want: models.StageSeed},
		{name: "angel label", rounds: labeled("Angel"), funding: 1, want: models.StageSeed},
		{name: "amount fallback seed", rounds: labeled("Strategic"), funding: 4, want: models.StageSeed},
		{name: "amount fallback series a", rounds: labeled("Strategic"), funding: 12, want: models.StageSeriesA},
		{name: "amount fallback growth", rounds: labeled("Strategic"), funding: 45, want: models.StageGrowth},
		{name: "amount fallback late", rounds: labeled("Strategic"), funding: 80, want: models.StageLate},
		{name: "boundary five million is seed", rounds: nil, funding: 5, want: models.StageSeed},
		{name: "boundary twenty million is series a", rounds: nil, funding: 20, want: models.StageSeriesA},
		{name: "no rounds no funding", rounds: nil, funding: 0, want: models.StageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferStage(tt.rounds, tt.funding))
		})
	}
}

func TestIsHiddenGem(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -20)
	old := now.AddDate(0, 0, -120)
	backed := investorBreakdown{tier1: []string{"Paradigm"}}

	tests := []struct {
		name      string
		tokenless bool
		listedAt  *time.Time
		stage     models.ProjectStage
		inv       investorBreakdown
		tvl       float64
		want      bool
	}{
		{name: "all conditions hold", tokenless: true, listedAt: &recent, stage: models.StageSeed, inv: backed, tvl: 5_000_000, want: true},
		{name: "series a also qualifies", tokenless: true, listedAt: &recent, stage: models.StageSeriesA, inv: backed, tvl: 5_000_000, want: true},
		{name: "tier2 backing qualifies", tokenless: true, listedAt: &recent, stage: models.StageSeed, inv: investorBreakdown{tier2: []string{"Hashed"}}, tvl: 5_000_000, want: true},
		{name: "not tokenless", tokenless: false, listedAt: &recent, stage: models.StageSeed, inv: backed, tvl: 5_000_000, want: false},
		{name: "no listing date", tokenless: true, stage: models.StageSeed, inv: backed, tvl: 5_000_000, want: false},
		{name: "listed too long ago", tokenless: true, listedAt: &old, stage: models.StageSeed, inv: backed, tvl: 5_000_000, want: false},
		{name: "late stage", tokenless: true, listedAt: &recent, stage: models.StageLate, inv: backed, tvl: 5_000_000, want: false},
		{name: "unknown stage", tokenless: true, listedAt: &recent, stage: models.StageUnknown, inv: backed, tvl: 5_000_000, want: false},
		{name: "no tiered investors", tokenless: true, listedAt: &recent, stage: models.StageSeed, inv: investorBreakdown{}, tvl: 5_000_000, want: false},
		{name: "tvl below range", tokenless: true, listedAt: &recent, stage: models.StageSeed, inv: backed, tvl: 50_000, want: false},
		{name: "tvl above range", tokenless: true, listedAt: &recent, stage: models.StageSeed, inv: backed, tvl: 20_000_000, want: false},
		{name: "tvl boundaries inclusive low", tokenless: true, listedAt: &recent, stage: models.StageSeed, inv: backed, tvl: 100_000, want: true},
		{name: "tvl boundaries inclusive high", tokenless: true, listedAt: &recent, stage: models.StageSeed, inv: backed, tvl: 10_000_000, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isHiddenGem(tt.tokenless, tt.listedAt, now, tt.stage, tt.inv, tt.tvl)
			assert.Equal(t, tt.want, got)
		})
	}
}
