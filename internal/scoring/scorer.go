package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/tkhs0813/airdroplens/internal/models"
)

// DefaultMinTVL filters out protocols too small to be credible airdrop
// candidates.
const DefaultMinTVL = 100_000.0

// Engine scores protocols against a fixed snapshot of funding rounds.
// The round index is built once at construction and read-only afterwards,
// so a single Engine may serve concurrent scoring calls. Refreshed input
// data means a new Engine, not mutation of an existing one.
type Engine struct {
	protocols []models.Protocol
	raises    []models.FundingRound
	index     roundIndex
	nowFunc   func() time.Time
}

// NewEngine builds a scoring engine over the given protocol and raise
// snapshot.
func NewEngine(protocols []models.Protocol, raises []models.FundingRound) *Engine {
	return &Engine{
		protocols: protocols,
		raises:    raises,
		index:     buildRoundIndex(raises),
		nowFunc:   time.Now,
	}
}

// ScoreProtocol implements the Scorer interface. Pure computation: no I/O,
// no mutation of inputs.
func (e *Engine) ScoreProtocol(p models.Protocol) models.AirdropScore {
	now := e.nowFunc()

	name := p.Name
	if name == "" {
		name = "Unknown"
	}
	category := p.Category
	if category == "" {
		category = "Unknown"
	}

	var listedAt *time.Time
	if p.ListedAt != nil {
		t := time.Unix(*p.ListedAt, 0)
		listedAt = &t
	}

	rounds := e.matchRounds(&p)
	inv := classifyInvestors(rounds)

	var totalFunding float64
	for _, round := range rounds {
		totalFunding += round.AmountM()
	}

	tokenless := isTokenless(&p)
	hasPoints := hasPointsProgram(&p)
	stage := inferStage(rounds, totalFunding)
	hiddenGem := isHiddenGem(tokenless, listedAt, now, stage, inv, p.TVL)

	score := models.AirdropScore{
		ProtocolName: name,
		ProtocolSlug: p.Slug,
		TVL:          p.TVL,
		TVLChange7d:  p.Change7d,
		Category:     category,
		Chains:       append([]string(nil), p.Chains...),
		IsTokenless:  tokenless,
		HasPoints:    hasPoints,
		ProjectStage: stage,
		IsHiddenGem:  hiddenGem,
		ListedAt:     listedAt,

		FundingAmount: totalFunding,
		FundingRounds: rounds,
		AirdropVCs:    inv.airdrop,
		Tier1VCs:      inv.tier1,
		Tier2VCs:      inv.tier2,
		AllInvestors:  inv.all,

		URL:     p.URL,
		Twitter: p.Twitter,
	}

	if tokenless {
		score.TokenlessScore = 12
	}
	if hasPoints {
		score.PointsScore = 15
	}
	if len(inv.airdrop) > 0 {
		score.AirdropVCScore = 13
	}
	score.FundingScore = fundingScore(totalFunding)
	score.Tier1VCScore = tier1Score(len(inv.tier1))
	if len(inv.tier1) == 0 {
		score.Tier2VCScore = tier2Score(len(inv.tier2))
	}
	score.RecencyScore = recencyScore(listedAt, now)
	score.StageScore = stageScore(stage)
	score.TVLGrowthScore = growthScore(p.Change7d)
	if _, hot := hotCategories[strings.ToLower(category)]; hot {
		score.CategoryScore = 5
	}
	if p.TVL >= 10_000_000 && p.TVL <= 100_000_000 {
		score.TVLRangeScore = 7
	}
	if hiddenGem {
		score.HiddenGemScore = 10
	}

	for _, sub := range score.SubScores() {
		score.TotalScore += sub
	}

	return score
}

// fundingScore awards up to 15 points for the summed raise amount in
// millions USD.
func fundingScore(totalM float64) int {
	switch {
	case totalM >= 50:
		return 15
	case totalM >= 20:
		return 12
	case totalM >= 10:
		return 9
	case totalM >= 5:
		return 6
	case totalM >= 1:
		return 3
	default:
		return 0
	}
}

func tier1Score(count int) int {
	switch {
	case count >= 3:
		return 12
	case count >= 2:
		return 8
	case count >= 1:
		return 5
	default:
		return 0
	}
}

func tier2Score(count int) int {
	switch {
	case count >= 3:
		return 8
	case count >= 2:
		return 5
	case count >= 1:
		return 3
	default:
		return 0
	}
}

func recencyScore(listedAt *time.Time, now time.Time) int {
	if listedAt == nil {
		return 0
	}
	days := int(now.Sub(*listedAt).Hours() / 24)
	switch {
	case days <= 30:
		return 10
	case days <= 90:
		return 7
	case days <= 180:
		return 4
	case days <= 365:
		return 2
	default:
		return 0
	}
}

func stageScore(stage models.ProjectStage) int {
	switch stage {
	case models.StageSeed:
		return 10
	case models.StageSeriesA:
		return 5
	default:
		return 0
	}
}

func growthScore(change7d *float64) int {
	if change7d == nil {
		return 0
	}
	switch {
	case *change7d >= 50:
		return 8
	case *change7d >= 20:
		return 5
	case *change7d >= 10:
		return 3
	default:
		return 0
	}
}

// ScoreAll implements the Scorer interface.
func (e *Engine) ScoreAll(minTVL float64) []models.AirdropScore {
	scores := make([]models.AirdropScore, 0, len(e.protocols))

	for _, p := range e.protocols {
		if p.TVL < minTVL {
			continue
		}
		// Centralized exchanges are not airdrop candidates.
		if strings.Contains(strings.ToLower(p.Category), "cex") {
			continue
		}
		scores = append(scores, e.ScoreProtocol(p))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return scores[i].TVL > scores[j].TVL
	})

	return scores
}

// TopTokenless implements the Scorer interface.
func (e *Engine) TopTokenless(limit int, minTVL float64) []models.AirdropScore {
	return e.filterScores(limit, minTVL, func(s *models.AirdropScore) bool {
		return s.IsTokenless
	})
}

// VCBacked implements the Scorer interface.
func (e *Engine) VCBacked(limit int, minTVL float64) []models.AirdropScore {
	return e.filterScores(limit, minTVL, func(s *models.AirdropScore) bool {
		return len(s.Tier1VCs) > 0 || len(s.Tier2VCs) > 0
	})
}

// AirdropVCBacked implements the Scorer interface.
func (e *Engine) AirdropVCBacked(limit int, minTVL float64) []models.AirdropScore {
	return e.filterScores(limit, minTVL, func(s *models.AirdropScore) bool {
		return len(s.AirdropVCs) > 0
	})
}

// HiddenGems implements the Scorer interface.
func (e *Engine) HiddenGems(limit int, minTVL float64) []models.AirdropScore {
	return e.filterScores(limit, minTVL, func(s *models.AirdropScore) bool {
		return s.IsHiddenGem
	})
}

func (e *Engine) filterScores(limit int, minTVL float64, keep func(*models.AirdropScore) bool) []models.AirdropScore {
	all := e.ScoreAll(minTVL)

	var filtered []models.AirdropScore
	for i := range all {
		if !keep(&all[i]) {
			continue
		}
		filtered = append(filtered, all[i])
		if limit > 0 && len(filtered) == limit {
			break
		}
	}

	return filtered
}
