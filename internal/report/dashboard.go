package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tkhs0813/airdroplens/internal/models"
)

// DashboardGenerator renders the static HTML dashboard: a searchable,
// filterable candidate table with summary stat cards.
type DashboardGenerator struct {
	outputDir string
	tmpl      *template.Template
}

func NewDashboardGenerator(outputDir string) (*DashboardGenerator, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	tmpl, err := template.New("dashboard").Funcs(template.FuncMap{
		"formatTVL":    FormatTVL,
		"formatChange": formatChange,
		"scoreClass":   scoreClass,
		"lower":        strings.ToLower,
		"inc":          func(i int) int { return i + 1 },
		"deref": func(f *float64) float64 {
			if f == nil {
				return 0
			}
			return *f
		},
	}).Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	return &DashboardGenerator{outputDir: outputDir, tmpl: tmpl}, nil
}

func scoreClass(score int) string {
	switch {
	case score >= 70:
		return "score-high"
	case score >= 50:
		return "score-medium"
	default:
		return "score-low"
	}
}

type dashboardData struct {
	Title       string
	GeneratedAt string
	Scores      []models.AirdropScore
	Tokenless   int
	Tier1Backed int
	HighScore   int
}

// Render returns the dashboard HTML for the given ranked scores.
func (g *DashboardGenerator) Render(scores []models.AirdropScore, generatedAt time.Time) (string, error) {
	data := dashboardData{
		Title:       "Airdrop Discovery Dashboard",
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Scores:      scores,
	}
	for i := range scores {
		if scores[i].IsTokenless {
			data.Tokenless++
		}
		if len(scores[i].Tier1VCs) > 0 {
			data.Tier1Backed++
		}
		if scores[i].TotalScore >= 50 {
			data.HighScore++
		}
	}

	var sb strings.Builder
	if err := g.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}
	return sb.String(), nil
}

// Save renders and writes the dashboard, returning the output path.
func (g *DashboardGenerator) Save(scores []models.AirdropScore, generatedAt time.Time, filename string) (string, error) {
	html, err := g.Render(scores, generatedAt)
	if err != nil {
		return "", err
	}

	path := filepath.Join(g.outputDir, filename)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write dashboard: %w", err)
	}
	return path, nil
}

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
:root {
    --bg-primary: #0a0a0f;
    --bg-secondary: #12121a;
    --bg-tertiary: #1a1a24;
    --border-color: #2a2a3c;
    --text-primary: #f0f0f5;
    --text-secondary: #9898a8;
    --accent-purple: #8b5cf6;
    --accent-green: #10b981;
    --accent-red: #ef4444;
    --accent-yellow: #f59e0b;
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: 'Inter', -apple-system, sans-serif;
    background: var(--bg-primary);
    color: var(--text-primary);
    line-height: 1.6;
}
.container { max-width: 1400px; margin: 0 auto; padding: 2rem; }
header {
    text-align: center;
    margin-bottom: 2rem;
    padding: 2rem;
    background: var(--bg-secondary);
    border: 1px solid var(--border-color);
    border-radius: 16px;
}
h1 { font-size: 2.2rem; color: var(--accent-purple); }
.subtitle { color: var(--text-secondary); }
.stats-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 1.5rem;
    margin-bottom: 2rem;
}
.stat-card {
    background: var(--bg-secondary);
    border: 1px solid var(--border-color);
    border-radius: 12px;
    padding: 1.5rem;
    text-align: center;
}
.stat-value { font-size: 2rem; font-weight: 700; color: var(--accent-purple); }
.stat-label { color: var(--text-secondary); font-size: 0.9rem; }
.filters { display: flex; gap: 1rem; margin-bottom: 1.5rem; flex-wrap: wrap; }
.filter-btn {
    background: var(--bg-secondary);
    border: 1px solid var(--border-color);
    color: var(--text-primary);
    padding: 0.75rem 1.5rem;
    border-radius: 8px;
    cursor: pointer;
}
.filter-btn:hover, .filter-btn.active { background: var(--accent-purple); color: #fff; }
.search-box {
    flex: 1;
    min-width: 200px;
    background: var(--bg-secondary);
    border: 1px solid var(--border-color);
    color: var(--text-primary);
    padding: 0.75rem 1rem;
    border-radius: 8px;
}
.table-container {
    background: var(--bg-secondary);
    border: 1px solid var(--border-color);
    border-radius: 16px;
    overflow-x: auto;
}
table { width: 100%; border-collapse: collapse; }
th {
    background: var(--bg-tertiary);
    padding: 1rem;
    text-align: left;
    font-size: 0.85rem;
    text-transform: uppercase;
    color: var(--text-secondary);
}
td { padding: 1rem; border-bottom: 1px solid var(--border-color); }
tr:hover { background: var(--bg-tertiary); }
.rank { font-weight: 700; color: var(--text-secondary); }
.protocol a { color: var(--text-primary); text-decoration: none; font-weight: 600; }
.protocol a:hover { color: var(--accent-purple); }
.badge {
    font-size: 0.7rem;
    padding: 0.2rem 0.5rem;
    border-radius: 4px;
    margin-left: 0.4rem;
    white-space: nowrap;
}
.badge-tokenless { background: var(--accent-green); color: #000; }
.badge-points { background: var(--accent-yellow); color: #000; }
.badge-gem { background: var(--accent-purple); color: #fff; }
.score-badge {
    font-weight: 700;
    padding: 0.4rem 0.9rem;
    border-radius: 8px;
    display: inline-block;
    min-width: 50px;
    text-align: center;
}
.score-high { background: var(--accent-green); color: #000; }
.score-medium { background: var(--accent-yellow); color: #000; }
.score-low { background: var(--bg-tertiary); color: var(--text-secondary); }
.positive { color: var(--accent-green); }
.negative { color: var(--accent-red); }
.vc-badge {
    background: var(--accent-purple);
    color: #fff;
    padding: 0.2rem 0.5rem;
    border-radius: 4px;
    font-size: 0.7rem;
    margin-right: 0.25rem;
}
.vc-badge.tier2 { background: var(--bg-tertiary); color: var(--text-secondary); }
footer { text-align: center; margin-top: 2rem; color: var(--text-secondary); }
footer a { color: var(--accent-purple); }
</style>
</head>
<body>
<div class="container">
    <header>
        <h1>Airdrop Discovery Dashboard</h1>
        <p class="subtitle">DeFiLlama data-driven candidate ranking | Last update: {{.GeneratedAt}}</p>
    </header>

    <div class="stats-grid">
        <div class="stat-card"><div class="stat-value">{{len .Scores}}</div><div class="stat-label">Analyzed protocols</div></div>
        <div class="stat-card"><div class="stat-value">{{.Tokenless}}</div><div class="stat-label">Tokenless</div></div>
        <div class="stat-card"><div class="stat-value">{{.Tier1Backed}}</div><div class="stat-label">Tier-1 VC backed</div></div>
        <div class="stat-card"><div class="stat-value">{{.HighScore}}</div><div class="stat-label">High score (50+)</div></div>
    </div>

    <div class="filters">
        <button class="filter-btn active" onclick="filterTable('all', event)">All</button>
        <button class="filter-btn" onclick="filterTable('tokenless', event)">Tokenless</button>
        <button class="filter-btn" onclick="filterTable('points', event)">Points</button>
        <button class="filter-btn" onclick="filterTable('gem', event)">Hidden gems</button>
        <button class="filter-btn" onclick="filterTable('high-score', event)">High score (50+)</button>
        <input type="text" class="search-box" placeholder="Search by protocol name..." oninput="searchTable(this.value)">
    </div>

    <div class="table-container">
        <table id="projects-table">
            <thead>
                <tr><th>#</th><th>Protocol</th><th>Score</th><th>TVL</th><th>7d</th><th>Category</th><th>Stage</th><th>Funding</th><th>VCs</th></tr>
            </thead>
            <tbody>
{{- range $i, $s := .Scores}}
                <tr data-tokenless="{{$s.IsTokenless}}" data-points="{{$s.HasPoints}}" data-gem="{{$s.IsHiddenGem}}" data-score="{{$s.TotalScore}}" data-name="{{lower $s.ProtocolName}}">
                    <td class="rank">{{inc $i}}</td>
                    <td class="protocol">
                        <a href="https://defillama.com/protocol/{{$s.ProtocolSlug}}" target="_blank">{{$s.ProtocolName}}</a>
                        {{- if $s.IsTokenless}}<span class="badge badge-tokenless">No Token</span>{{end}}
                        {{- if $s.HasPoints}}<span class="badge badge-points">Points</span>{{end}}
                        {{- if $s.IsHiddenGem}}<span class="badge badge-gem">Gem</span>{{end}}
                    </td>
                    <td><span class="score-badge {{scoreClass $s.TotalScore}}">{{$s.TotalScore}}</span></td>
                    <td>{{formatTVL $s.TVL}}</td>
                    <td>{{if $s.TVLChange7d}}<span class="{{if ge (deref $s.TVLChange7d) 0.0}}positive{{else}}negative{{end}}">{{formatChange $s.TVLChange7d}}</span>{{else}}N/A{{end}}</td>
                    <td>{{$s.Category}}</td>
                    <td>{{$s.ProjectStage}}</td>
                    <td>{{if gt $s.FundingAmount 0.0}}${{printf "%.1f" $s.FundingAmount}}M{{else}}-{{end}}</td>
                    <td>
                        {{- range $s.Tier1VCs}}<span class="vc-badge">{{.}}</span>{{end}}
                        {{- range $s.Tier2VCs}}<span class="vc-badge tier2">{{.}}</span>{{end}}
                    </td>
                </tr>
{{- end}}
            </tbody>
        </table>
    </div>

    <footer>
        <p>Data source: <a href="https://defillama.com" target="_blank">DeFiLlama</a> | airdroplens</p>
    </footer>
</div>

<script>
function filterTable(filter, event) {
    const rows = document.querySelectorAll('#projects-table tbody tr');
    document.querySelectorAll('.filter-btn').forEach(btn => btn.classList.remove('active'));
    event.target.classList.add('active');

    rows.forEach(row => {
        let show = true;
        switch (filter) {
            case 'tokenless': show = row.dataset.tokenless === 'true'; break;
            case 'points': show = row.dataset.points === 'true'; break;
            case 'gem': show = row.dataset.gem === 'true'; break;
            case 'high-score': show = parseInt(row.dataset.score) >= 50; break;
        }
        row.style.display = show ? '' : 'none';
    });
    updateRanks();
}

function searchTable(query) {
    const rows = document.querySelectorAll('#projects-table tbody tr');
    const lowered = query.toLowerCase();
    rows.forEach(row => {
        row.style.display = row.dataset.name.includes(lowered) ? '' : 'none';
    });
    updateRanks();
}

function updateRanks() {
    let rank = 1;
    document.querySelectorAll('#projects-table tbody tr').forEach(row => {
        if (row.style.display !== 'none') {
            row.querySelector('.rank').textContent = rank++;
        }
    });
}
</script>
</body>
</html>
`
