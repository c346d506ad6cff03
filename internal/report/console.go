package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tkhs0813/airdroplens/internal/models"
)

// FormatTVL renders a USD amount the way the dashboard does: $1.23B, $45.60M,
// $780K.
func FormatTVL(tvl float64) string {
	switch {
	case tvl >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", tvl/1_000_000_000)
	case tvl >= 1_000_000:
		return fmt.Sprintf("$%.2fM", tvl/1_000_000)
	case tvl >= 1_000:
		return fmt.Sprintf("$%.0fK", tvl/1_000)
	default:
		return fmt.Sprintf("$%.0f", tvl)
	}
}

func formatChange(change *float64) string {
	if change == nil {
		return "N/A"
	}
	if *change >= 0 {
		return fmt.Sprintf("+%.1f%%", *change)
	}
	return fmt.Sprintf("%.1f%%", *change)
}

func flagColumn(s *models.AirdropScore) string {
	var flags []string
	if s.IsTokenless {
		flags = append(flags, "NO TOKEN")
	}
	if s.HasPoints {
		flags = append(flags, "POINTS")
	}
	if s.IsHiddenGem {
		flags = append(flags, "GEM")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, " | ")
}

func vcColumn(s *models.AirdropScore) string {
	vcs := s.Tier1VCs
	if len(vcs) == 0 {
		vcs = s.Tier2VCs
	}
	if len(vcs) == 0 {
		return "-"
	}
	if len(vcs) > 3 {
		vcs = vcs[:3]
	}
	return strings.Join(vcs, ", ")
}

// WriteConsoleReport prints a ranked candidate table plus summary counts.
func WriteConsoleReport(w io.Writer, scores []models.AirdropScore) {
	fmt.Fprintln(w, color.CyanString("\n=== Top Airdrop Candidates ==="))

	var tokenless, gems, vcBacked int
	for i := range scores {
		if scores[i].IsTokenless {
			tokenless++
		}
		if scores[i].IsHiddenGem {
			gems++
		}
		if len(scores[i].Tier1VCs) > 0 || len(scores[i].Tier2VCs) > 0 {
			vcBacked++
		}
	}
	fmt.Fprintf(w, "Analyzed: %d | Tokenless: %d | VC-backed: %d | Hidden gems: %d\n\n",
		len(scores), tokenless, vcBacked, gems)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Protocol", "Score", "TVL", "7d", "Category", "Stage", "Funding", "Top VCs", "Flags"})
	table.SetAutoWrapText(false)

	for i := range scores {
		s := &scores[i]

		funding := "-"
		if s.FundingAmount > 0 {
			funding = fmt.Sprintf("$%.1fM", s.FundingAmount)
		}

		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			s.ProtocolName,
			fmt.Sprintf("%d", s.TotalScore),
			FormatTVL(s.TVL),
			formatChange(s.TVLChange7d),
			s.Category,
			string(s.ProjectStage),
			funding,
			vcColumn(s),
			flagColumn(s),
		})
	}

	table.Render()
}
