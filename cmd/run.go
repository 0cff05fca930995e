package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gitscout/gitscout/internal/ai"
	"github.com/gitscout/gitscout/internal/ai/gemini"
	"github.com/gitscout/gitscout/internal/engine"
	"github.com/gitscout/gitscout/internal/githost"
	"github.com/gitscout/gitscout/internal/logger"
	"github.com/gitscout/gitscout/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	PromptBreakdown = "Show repository breakdown"
	PromptDump      = "Dump analyses to file"
	PromptExit      = "Exit"
	PromptBack      = "back"

	candidateConcurrency = 4
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next?",
	Items: []string{PromptBreakdown, PromptDump, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run [handle ...]",
	Short: "Analyze candidate profiles against the configured job posting",
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto", "y", false, "print the ranking and exit without the interactive prompt")
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the gitscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	job, err := engine.JobSpecFromMap(config.Job)
	if err != nil {
		logger.Fatal("parsing the job posting", zap.Error(err))
	}

	candidates := gatherCandidates(config, args)
	if len(candidates) == 0 {
		logger.Fatal("no candidates given",
			zap.String("hint", "list handles under 'candidates' in the configuration file or pass them as arguments"),
		)
	}

	token := resolveToken(config, logger)

	host := githost.New(logger, token)
	host.SetUserAgent(config.UserAgent)

	comparator, err := prepareComparator(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("similarity comparison disabled", zap.Error(err))
	}

	eng := engine.New(host, comparator, logger, engineConfig(config))

	logger.Info("analyzing candidates",
		zap.Int("count", len(candidates)),
		zap.String("job", job.Title),
	)

	analyses := analyzeCandidates(ctx, eng, job, candidates, logger)
	if len(analyses) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates could be analyzed"))
		return
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].Scores.Profile > analyses[j].Scores.Profile
	})

	if err := renderRanking(analyses); err != nil {
		logger.Fatal("rendering the ranking", zap.Error(err))
	}

	if cmd.Flag("auto").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, analyses, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, analyses []*engine.ProfileAnalysis, logger *zap.Logger) error {
	switch action {
	case PromptBreakdown:
		return pickBreakdown(analyses)
	case PromptDump:
		filename, err := dumpToTmpFile(analyses)
		if err != nil {
			return fmt.Errorf("dump analyses to file: %w", err)
		}
		logger.Info("dumping analyses to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// analyzeCandidates runs the engine over every candidate concurrently. An
// unknown handle drops that candidate from the ranking; it never aborts the
// others.
func analyzeCandidates(ctx context.Context, eng *engine.Engine, job *engine.JobSpec, candidates []string, log *zap.Logger) []*engine.ProfileAnalysis {
	results := make([]*engine.ProfileAnalysis, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(candidateConcurrency)
	for i, handle := range candidates {
		g.Go(func() error {
			analysis, err := eng.AnalyzeProfile(gctx, handle, job)
			if err != nil {
				logger.WithCandidate(log, handle).Warn("skipping candidate", zap.Error(err))
				return nil
			}
			results[i] = analysis
			return nil
		})
	}
	_ = g.Wait()

	analyses := make([]*engine.ProfileAnalysis, 0, len(results))
	for _, a := range results {
		if a != nil {
			analyses = append(analyses, a)
		}
	}
	return analyses
}

func pickBreakdown(analyses []*engine.ProfileAnalysis) error {
	items := make([]string, 0, len(analyses)+1)
	for _, a := range analyses {
		items = append(items, a.Handle)
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: append(items, PromptBack),
	}

	_, selected, err := candidatePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	for _, a := range analyses {
		if a.Handle == selected {
			return renderBreakdown(a)
		}
	}
	return fmt.Errorf("there is no such candidate %s", selected)
}

func gatherCandidates(config *Config, args []string) []string {
	seen := make(map[string]struct{})
	candidates := make([]string, 0, len(config.Candidates)+len(args))
	for _, handle := range append(append([]string{}, config.Candidates...), args...) {
		handle = strings.TrimSpace(handle)
		if handle == "" {
			continue
		}
		if _, dup := seen[handle]; dup {
			continue
		}
		seen[handle] = struct{}{}
		candidates = append(candidates, handle)
	}
	return candidates
}

// resolveToken loads the GitHub token. A missing token is not fatal: public
// data stays reachable, only with tighter rate limits.
func resolveToken(config *Config, logger *zap.Logger) string {
	tokenFile := strings.TrimSpace(config.GithubTokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("github-token-file"))
	}

	token, err := secrets.Load(secrets.Source{
		Name: "github token",
		File: tokenFile,
		Env:  "GITHUB_TOKEN",
	})
	if err != nil {
		logger.Warn("proceeding without a github token",
			zap.Error(err),
			zap.String("hint", "set GITHUB_TOKEN_FILE environment variable or the 'github-token-file' key in the configuration file"),
		)
		return ""
	}
	return token
}

func engineConfig(config *Config) engine.Config {
	cfg := engine.DefaultConfig()
	analysis := config.Analysis
	if analysis == nil {
		return cfg
	}

	if analysis.MaxRepos > 0 {
		cfg.MaxRepos = analysis.MaxRepos
	}
	if analysis.MaxFiles > 0 {
		cfg.MaxFiles = analysis.MaxFiles
	}
	if analysis.MaxFileBytes > 0 {
		cfg.MaxFileBytes = analysis.MaxFileBytes
	}
	if analysis.MaxComparisons > 0 {
		cfg.MaxComparisons = analysis.MaxComparisons
	}
	if analysis.Scoring != nil {
		cfg.Weights = *analysis.Scoring
	}
	if analysis.Quality != nil {
		cfg.Quality = *analysis.Quality
	}
	return cfg
}

func prepareComparator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Comparator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKeyFile := strings.TrimSpace(cfg.Gemini.APIKeyFile)
	if apiKeyFile == "" {
		apiKeyFile = strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: apiKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, genLogger, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewComparator(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}
