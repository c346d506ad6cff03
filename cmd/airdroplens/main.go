package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tkhs0813/airdroplens/internal/ai"
	openaiAnalyzer "github.com/tkhs0813/airdroplens/internal/ai/openai"
	"github.com/tkhs0813/airdroplens/internal/configs"
	"github.com/tkhs0813/airdroplens/internal/data"
	"github.com/tkhs0813/airdroplens/internal/data/collector/defillama"
	"github.com/tkhs0813/airdroplens/internal/data/storage"
	"github.com/tkhs0813/airdroplens/internal/models"
	"github.com/tkhs0813/airdroplens/internal/report"
	"github.com/tkhs0813/airdroplens/internal/scoring"
)

// DiscoverySystem wires the collector, scorer, renderers, and optional
// storage/AI collaborators together.
type DiscoverySystem struct {
	config    *configs.Config
	collector data.DataCollector
	storage   data.DataStorage
	analyzer  ai.Analyzer
}

func NewDiscoverySystem(config *configs.Config, collector data.DataCollector, storage data.DataStorage, analyzer ai.Analyzer) *DiscoverySystem {
	return &DiscoverySystem{
		config:    config,
		collector: collector,
		storage:   storage,
		analyzer:  analyzer,
	}
}

// loadSnapshot fetches both listings and builds a scoring engine over them.
func (s *DiscoverySystem) loadSnapshot(ctx context.Context) (*scoring.Engine, error) {
	protocols, err := s.collector.GetProtocols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch protocols: %w", err)
	}
	log.Debug("fetched protocols", "count", len(protocols))

	raises, err := s.collector.GetRaises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raises: %w", err)
	}
	log.Debug("fetched raises", "count", len(raises))

	return scoring.NewEngine(protocols, raises), nil
}

// RunConsole prints the ranked report to stdout.
func (s *DiscoverySystem) RunConsole(ctx context.Context, top int) error {
	engine, err := s.loadSnapshot(ctx)
	if err != nil {
		return err
	}

	scores := engine.ScoreAll(s.config.MinTVL)
	if top > 0 && len(scores) > top {
		scores = scores[:top]
	}

	report.WriteConsoleReport(os.Stdout, scores)

	s.persistScores(ctx, scores)
	s.printResearchNote(ctx, scores)
	return nil
}

// RunDashboard scores everything and writes the HTML dashboard.
func (s *DiscoverySystem) RunDashboard(ctx context.Context, top int) error {
	engine, err := s.loadSnapshot(ctx)
	if err != nil {
		return err
	}

	scores := engine.ScoreAll(s.config.MinTVL)
	if top > 0 && len(scores) > top {
		scores = scores[:top]
	}

	generator, err := report.NewDashboardGenerator(s.config.OutputDir)
	if err != nil {
		return err
	}

	path, err := generator.Save(scores, time.Now(), "index.html")
	if err != nil {
		return err
	}
	log.Info("dashboard generated", "path", path, "protocols", len(scores))

	s.persistScores(ctx, scores)
	return nil
}

// RunLatest reprints the newest persisted snapshot without refetching.
func (s *DiscoverySystem) RunLatest(ctx context.Context, top int) error {
	if s.storage == nil {
		return fmt.Errorf("no database configured, cannot load persisted scores")
	}

	scores, err := s.storage.GetLatestScores(ctx, top)
	if err != nil {
		return fmt.Errorf("failed to load latest scores: %w", err)
	}

	report.WriteConsoleReport(os.Stdout, scores)
	return nil
}

// TestAPI verifies connectivity to both upstream endpoints.
func (s *DiscoverySystem) TestAPI(ctx context.Context) error {
	protocols, err := s.collector.GetProtocols(ctx)
	if err != nil {
		return fmt.Errorf("protocols endpoint: %w", err)
	}
	log.Info("protocols endpoint ok", "count", len(protocols))

	raises, err := s.collector.GetRaises(ctx)
	if err != nil {
		return fmt.Errorf("raises endpoint: %w", err)
	}
	log.Info("raises endpoint ok", "count", len(raises))

	return nil
}

func (s *DiscoverySystem) persistScores(ctx context.Context, scores []models.AirdropScore) {
	if s.storage == nil {
		return
	}
	if err := s.storage.SaveScores(ctx, time.Now(), scores); err != nil {
		log.Error("failed to persist score snapshot", "err", err)
		return
	}
	log.Debug("score snapshot persisted", "rows", len(scores))
}

func (s *DiscoverySystem) printResearchNote(ctx context.Context, scores []models.AirdropScore) {
	if s.analyzer == nil || len(scores) == 0 {
		return
	}

	top := scores
	if len(top) > 10 {
		top = top[:10]
	}

	note, err := s.analyzer.SummarizeCandidates(ctx, top)
	if err != nil {
		log.Error("failed to generate research note", "err", err)
		return
	}

	fmt.Println("\n=== Research Note ===")
	fmt.Println(note.Summary)
	for _, h := range note.Highlights {
		fmt.Println("  +", h)
	}
	for _, c := range note.Cautions {
		fmt.Println("  !", c)
	}
}

var (
	flagconf    string
	flagConsole bool
	flagLatest  bool
	flagTestAPI bool
	flagClear   bool
	flagTop     int

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf config.yaml")
	flag.BoolVar(&flagConsole, "console", false, "print the ranked report to the console instead of generating the dashboard")
	flag.BoolVar(&flagLatest, "latest", false, "print the most recent persisted snapshot without refetching")
	flag.BoolVar(&flagTestAPI, "test-api", false, "test API connectivity and exit")
	flag.BoolVar(&flagClear, "clear-cache", false, "clear cached API responses")
	flag.IntVar(&flagTop, "top", 0, "number of projects to include (0 = config default)")
}

func loadConfig(path string) (*configs.Config, error) {
	config := configs.Default()
	if path == "" {
		return config, nil
	}

	configFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func main() {
	flag.Parse()

	config, err := loadConfig(flagconf)
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	log.Debug("loaded config", "config", config)

	cacheTTL, err := time.ParseDuration(config.CacheTTL)
	if err != nil {
		cacheTTL = 6 * time.Hour
	}

	collector, err := defillama.NewClient(config.CacheDir, cacheTTL)
	if err != nil {
		log.Error("failed to create collector", "err", err)
		os.Exit(1)
	}

	if flagClear {
		if err := collector.ClearCache(); err != nil {
			log.Error("failed to clear cache", "err", err)
			os.Exit(1)
		}
		log.Info("cache cleared")
		if !flagConsole && !flagTestAPI {
			return
		}
	}

	var storager data.DataStorage
	if config.Database.ConnStr != "" {
		storager, err = storage.NewPostgresStorage(config.Database.ConnStr)
		if err != nil {
			log.Error("failed to create storage", "err", err)
			os.Exit(1)
		}
		defer storager.Close()
	}

	var analyzer ai.Analyzer
	if config.AIConfig.APIKey != "" {
		analyzer = openaiAnalyzer.NewOpenAIAnalyzer(config.AIConfig.APIKey, config.AIConfig.ModelType)
	}

	system := NewDiscoverySystem(config, collector, storager, analyzer)

	top := flagTop
	if top <= 0 {
		top = config.TopN
	}

	ctx := context.Background()

	switch {
	case flagTestAPI:
		if err := system.TestAPI(ctx); err != nil {
			log.Error("API connectivity test failed", "err", err)
			os.Exit(1)
		}
		log.Info("API connectivity test passed")
	case flagLatest:
		if err := system.RunLatest(ctx, top); err != nil {
			log.Error("failed to print latest snapshot", "err", err)
			os.Exit(1)
		}
	case flagConsole:
		if err := system.RunConsole(ctx, top); err != nil {
			log.Error("console report failed", "err", err)
			os.Exit(1)
		}
	default:
		if err := system.RunDashboard(ctx, top); err != nil {
			log.Error("dashboard generation failed", "err", err)
			os.Exit(1)
		}
	}
}
