package scoring

import (
	"strings"

	"github.com/tkhs0813/airdroplens/internal/models"
)

// Reference sets for investor classification. Matching is case-insensitive
// substring containment against the aliases below, so a short alias embedded
// in an unrelated longer name can false-positive. That is an accepted
// heuristic trade-off; do not tighten to exact or tokenized matching, it
// would silently change scoring outcomes.

// tier1VCs 一线投资机构及其常见别名
var tier1VCs = []string{
	"a16z",
	"a16z crypto",
	"andreessen horowitz",
	"paradigm",
	"polychain capital",
	"polychain",
	"multicoin capital",
	"multicoin",
	"pantera capital",
	"pantera",
	"dragonfly capital",
	"dragonfly",
	"sequoia capital",
	"sequoia",
	"coinbase ventures",
	"binance labs",
	"framework ventures",
	"electric capital",
	"variant",
	"variant fund",
	"haun ventures",
	"jump crypto",
	"galaxy digital",
	"delphi ventures",
	"delphi digital",
	"1kx",
	"standard crypto",
	"blockchain capital",
	"lightspeed venture partners",
}

// tier2VCs 二线但依然可靠的投资机构
var tier2VCs = []string{
	"hashkey capital",
	"okx ventures",
	"kraken ventures",
	"circle ventures",
	"solana ventures",
	"polygon ventures",
	"robot ventures",
	"placeholder",
	"nascent",
	"maven 11",
	"cms holdings",
	"animoca brands",
	"spartan group",
	"mechanism capital",
	"hack vc",
	"shima capital",
	"hashed",
	"foresight ventures",
	"amber group",
	"gsr",
	"wintermute ventures",
	"alameda research",
}

// airdropVCs are funds whose portfolio projects have historically shipped
// token airdrops at a high rate. Independent of the tier sets: a fund may
// appear here and in a tier list at the same time.
var airdropVCs = []string{
	"dragonfly",
	"electric capital",
	"variant",
	"1kx",
	"binance labs",
	"coinbase ventures",
	"delphi ventures",
	"delphi digital",
	"robot ventures",
	"nascent",
	"hack vc",
	"maven 11",
}

// investorBreakdown is the classifier output: deduplicated original-cased
// investor names in first-seen order.
type investorBreakdown struct {
	airdrop []string
	tier1   []string
	tier2   []string
	all     []string
}

func matchesAny(lowered string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(lowered, alias) {
			return true
		}
	}
	return false
}

// classifyInvestors walks every lead and other investor across the matched
// rounds and buckets them. The high-airdrop check is independent and
// additive; a tier-1 match suppresses the tier-2 check for that investor.
func classifyInvestors(rounds []models.FundingRound) investorBreakdown {
	var out investorBreakdown
	seenAll := make(map[string]struct{})
	seenAirdrop := make(map[string]struct{})
	seenTier1 := make(map[string]struct{})
	seenTier2 := make(map[string]struct{})

	for _, round := range rounds {
		investors := make([]string, 0, len(round.LeadInvestors)+len(round.OtherInvestors))
		investors = append(investors, round.LeadInvestors...)
		investors = append(investors, round.OtherInvestors...)

		for _, investor := range investors {
			if investor == "" {
				continue
			}
			lowered := strings.ToLower(strings.TrimSpace(investor))

			if _, ok := seenAll[investor]; !ok {
				seenAll[investor] = struct{}{}
				out.all = append(out.all, investor)
			}

			if matchesAny(lowered, airdropVCs) {
				if _, ok := seenAirdrop[investor]; !ok {
					seenAirdrop[investor] = struct{}{}
					out.airdrop = append(out.airdrop, investor)
				}
			}

			if matchesAny(lowered, tier1VCs) {
				if _, ok := seenTier1[investor]; !ok {
					seenTier1[investor] = struct{}{}
					out.tier1 = append(out.tier1, investor)
				}
			} else if matchesAny(lowered, tier2VCs) {
				if _, ok := seenTier2[investor]; !ok {
					seenTier2[investor] = struct{}{}
					out.tier2 = append(out.tier2, investor)
				}
			}
		}
	}

	return out
}
