package scoring

import (
	"regexp"
	"strings"

	"github.com/tkhs0813/airdroplens/internal/models"
)

var (
	nameSuffixRe = regexp.MustCompile(`\s+(v\d+|protocol|finance|labs?)$`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
)

// normalizeName lowers, trims, strips a trailing version/qualifier token and
// removes punctuation so "Uniswap Labs" and "uniswap" index to the same key.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = nameSuffixRe.ReplaceAllString(name, "")
	name = nonAlnumRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// roundIndex maps normalized round names and "id:<id>" keys to the rounds
// carrying them. Built once per Engine and read-only afterwards.
type roundIndex map[string][]models.FundingRound

func buildRoundIndex(rounds []models.FundingRound) roundIndex {
	index := make(roundIndex)

	for _, round := range rounds {
		if name := normalizeName(round.Name); name != "" {
			index[name] = append(index[name], round)
		}
		if !round.DefillamaID.IsZero() {
			key := "id:" + round.DefillamaID.Value
			index[key] = append(index[key], round)
		}
	}

	return index
}

// matchRounds finds every funding round plausibly belonging to the protocol
// via four keys: normalized name, slug, source id, and parent protocol.
// The parent key is a substring scan over all rounds rather than an index
// lookup; sub-protocol funding is often attributed to the parent under ids
// the index cannot anticipate.
func (e *Engine) matchRounds(p *models.Protocol) []models.FundingRound {
	var matches []models.FundingRound

	if name := normalizeName(p.Name); name != "" {
		matches = append(matches, e.index[name]...)
	}

	if slug := strings.ToLower(p.Slug); slug != "" {
		matches = append(matches, e.index[slug]...)
	}

	if p.ID != "" {
		matches = append(matches, e.index["id:"+p.ID]...)
	}

	if parent := strings.ToLower(strings.TrimPrefix(p.ParentProtocol, "parent#")); parent != "" {
		for _, round := range e.raises {
			if round.DefillamaID.Quoted && strings.Contains(strings.ToLower(round.DefillamaID.Value), parent) {
				matches = append(matches, round)
			}
		}
	}

	return dedupeRounds(matches)
}

type roundKey struct {
	name   string
	date   int64
	amount float64
}

// dedupeRounds drops repeat matches reached through different lookup keys.
// First occurrence wins; order is otherwise preserved.
func dedupeRounds(rounds []models.FundingRound) []models.FundingRound {
	if len(rounds) == 0 {
		return nil
	}

	seen := make(map[roundKey]struct{}, len(rounds))
	unique := make([]models.FundingRound, 0, len(rounds))

	for _, round := range rounds {
		key := roundKey{name: round.Name, date: round.Date, amount: round.AmountM()}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, round)
	}

	return unique
}
