package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// FlexID holds an identifier that DeFiLlama serves either as a JSON string
// or as a JSON number, depending on the endpoint and the record's age.
type FlexID struct {
	Value  string
	Quoted bool // true when the source encoded the id as a JSON string
}

func (f *FlexID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = FlexID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID{Value: s, Quoted: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID{Value: n.String()}
	return nil
}

func (f FlexID) MarshalJSON() ([]byte, error) {
	if f.Value == "" {
		return []byte("null"), nil
	}
	if f.Quoted {
		return json.Marshal(f.Value)
	}
	return []byte(f.Value), nil
}

// IsZero reports whether the id was absent or null in the source data.
func (f FlexID) IsZero() bool {
	return f.Value == ""
}

// Protocol 协议基本信息 (DeFiLlama /protocols record). Input only, never
// mutated by the scoring core.
type Protocol struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	ParentProtocol string   `json:"parentProtocol"` // "parent#<parent-id>" when set
	Symbol         string   `json:"symbol"`         // "-" or empty means no token
	GeckoID        *string  `json:"gecko_id"`
	CmcID          *FlexID  `json:"cmcId"`
	TVL            float64  `json:"tvl"`
	Change7d       *float64 `json:"change_7d"`
	Category       string   `json:"category"`
	Chains         []string `json:"chains"`
	ListedAt       *int64   `json:"listedAt"` // unix seconds
	Description    string   `json:"description"`
	URL            string   `json:"url"`
	Twitter        string   `json:"twitter"`
}

// FundingRound 融资轮次 (DeFiLlama /raises record). Input only.
type FundingRound struct {
	Name           string   `json:"name"`
	DefillamaID    FlexID   `json:"defillamaId"`
	Round          string   `json:"round"` // free text: "Seed", "Series A", ...
	Amount         *float64 `json:"amount"` // millions USD
	Date           int64    `json:"date"`   // unix seconds
	LeadInvestors  []string `json:"leadInvestors"`
	OtherInvestors []string `json:"otherInvestors"`
}

// AmountM returns the raise amount in millions USD, treating a missing
// amount as zero.
func (r FundingRound) AmountM() float64 {
	if r.Amount == nil {
		return 0
	}
	return *r.Amount
}

// ProjectStage is the funding stage inferred from round labels or, failing
// that, from the total amount raised.
type ProjectStage string

const (
	StageUnknown ProjectStage = "unknown"
	StageSeed    ProjectStage = "seed"
	StageSeriesA ProjectStage = "series_a"
	StageGrowth  ProjectStage = "growth"
	StageLate    ProjectStage = "late"
)

// AirdropScore is the scoring engine's output for one protocol. It owns
// copies of everything the renderers need; it holds no reference back to
// the source Protocol and is never mutated after creation.
//
// TotalScore is always the exact sum of the twelve sub-scores. The nominal
// ceiling of the rubric is 125 points; no clamp is applied to the sum.
type AirdropScore struct {
	ProtocolName string       `json:"protocol_name"`
	ProtocolSlug string       `json:"protocol_slug"`
	TotalScore   int          `json:"total_score"`
	TVL          float64      `json:"tvl"`
	TVLChange7d  *float64     `json:"tvl_change_7d"`
	Category     string       `json:"category"`
	Chains       []string     `json:"chains"`
	IsTokenless  bool         `json:"is_tokenless"`
	HasPoints    bool         `json:"has_points"`
	ProjectStage ProjectStage `json:"project_stage"`
	IsHiddenGem  bool         `json:"is_hidden_gem"`
	ListedAt     *time.Time   `json:"listed_at"`

	// Score breakdown
	TokenlessScore int `json:"tokenless_score"`
	PointsScore    int `json:"points_score"`
	AirdropVCScore int `json:"airdrop_vc_score"`
	FundingScore   int `json:"funding_score"`
	Tier1VCScore   int `json:"tier1_vc_score"`
	Tier2VCScore   int `json:"tier2_vc_score"`
	RecencyScore   int `json:"recency_score"`
	StageScore     int `json:"stage_score"`
	TVLGrowthScore int `json:"tvl_growth_score"`
	CategoryScore  int `json:"category_score"`
	TVLRangeScore  int `json:"tvl_range_score"`
	HiddenGemScore int `json:"hidden_gem_score"`

	// Aggregated funding
	FundingAmount float64        `json:"funding_amount"` // millions USD
	FundingRounds []FundingRound `json:"funding_rounds"`
	AirdropVCs    []string       `json:"airdrop_vcs"`
	Tier1VCs      []string       `json:"tier1_vcs"`
	Tier2VCs      []string       `json:"tier2_vcs"`
	AllInvestors  []string       `json:"all_investors"`

	// Links
	URL     string `json:"url"`
	Twitter string `json:"twitter"`
}

// SubScores returns the twelve rubric components in a fixed order, matching
// the breakdown fields above.
func (s *AirdropScore) SubScores() []int {
	return []int{
		s.TokenlessScore,
		s.PointsScore,
		s.AirdropVCScore,
		s.FundingScore,
		s.Tier1VCScore,
		s.Tier2VCScore,
		s.RecencyScore,
		s.StageScore,
		s.TVLGrowthScore,
		s.CategoryScore,
		s.TVLRangeScore,
		s.HiddenGemScore,
	}
}
