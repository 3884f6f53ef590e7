package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/candidate"
	"github.com/naukri-ai/talent-ranker/internal/logger"
	"github.com/naukri-ai/talent-ranker/internal/matching"
	"github.com/naukri-ai/talent-ranker/internal/ranking"
	"github.com/naukri-ai/talent-ranker/internal/report"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExit            = "Exit"
	PromptBack            = "back"
	PromptResultsToFile   = "Dump results to file"
	PromptPoolToFile      = "Dump the candidate pool to file"
	PromptCandidateReport = "Report for a candidate"
	defaultJobTitle       = "the position"
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptResultsToFile, PromptPoolToFile, PromptCandidateReport, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match and rank candidates from the dataset against the job requirement",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("dataset", "f", "", "path to the candidate dataset (overrides the config)")
	matchCmd.Flags().IntP("top-n", "n", 0, "number of results to return (overrides the config)")
	matchCmd.Flags().StringP("mode", "m", "", "matching mode: strict or lenient (overrides the config)")
	matchCmd.Flags().StringSlice("required-skills", nil, "required skills (overrides the config)")
	matchCmd.Flags().StringSlice("preferred-skills", nil, "preferred skills (overrides the config)")
	matchCmd.Flags().String("seniority", "", "wanted seniority: junior, midlevel or senior (overrides the config)")
	matchCmd.Flags().String("experience", "", "wanted experience range, e.g. 5-10 (overrides the config)")
	matchCmd.Flags().String("employment-type", "", "wanted employment type (overrides the config)")
	matchCmd.Flags().StringSlice("locations", nil, "acceptable locations (overrides the config)")
	matchCmd.Flags().String("job-title", "", "job title used in candidate reports")
	matchCmd.Flags().BoolP("refine", "r", false, "run the ranking refinement pass on the results")
	matchCmd.Flags().StringP("output", "o", "", "write results to the given file and skip the prompt")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "print results and exit without prompting")

	viper.BindPFlag("dataset", matchCmd.Flags().Lookup("dataset"))
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talent-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	pool := loadDataset(config, logger)

	req, err := buildRequirement(cmd, config)
	if err != nil {
		logger.Fatal("building the job requirement", zap.Error(err))
	}

	engine, err := matching.NewEngine(pool, engineOptions(cmd, config, logger)...)
	if err != nil {
		logger.Fatal("building the match engine", zap.Error(err))
	}

	topN := resolveTopN(cmd, config)

	results, err := engine.Match(ctx, req, topN)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates matched the requirement"))
		return
	}

	logger.Info("matching finished", zap.Int("count", results.Len()))

	analyzer := buildAnalyzer(ctx, config, logger)

	if refine, _ := cmd.Flags().GetBool("refine"); refine {
		refineResults(ctx, cmd, config, results, analyzer, logger)
		return
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := results.ToFile(output); err != nil {
			logger.Fatal("writing results", zap.Error(err))
		}
		logger.Info("results written", zap.String("filename", output))
		return
	}

	if auto, _ := cmd.Flags().GetBool("auto-approve"); auto {
		printJSON(results.Items, logger)
		return
	}

	jobTitle, _ := cmd.Flags().GetString("job-title")

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(ctx, action, pool, results, analyzer, jobTitle, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleMatchAction(ctx context.Context, action string, pool *candidate.Candidates, results *matching.Results, analyzer ai.Analyzer, jobTitle string, logger *zap.Logger) error {
	switch action {
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptPoolToFile:
		filename, err := pool.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump the candidate pool to file: %w", err)
		}
		logger.Info("dumping the candidate pool to file", zap.String("filename", filename))
		return nil
	case PromptCandidateReport:
		return candidateReport(ctx, results, analyzer, jobTitle, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// candidateReport lets the user pick one result and prints a markdown report
// for it. The analyzer enrichments are optional and absorbed on failure.
func candidateReport(ctx context.Context, results *matching.Results, analyzer ai.Analyzer, jobTitle string, logger *zap.Logger) error {
	items := make([]string, 0, results.Len()+1)
	for _, result := range results.Items {
		items = append(items, fmt.Sprintf("%s %s / %.1f%%",
			result.Candidate.ID, result.Candidate.Name, result.Score*100,
		))
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

	candidateID := strings.Split(selected, " ")[0]

	result := results.FindByCandidateID(candidateID)
	if result == nil {
		return fmt.Errorf("there is no such candidate id %s", candidateID)
	}

	wanted := append(append([]string{}, result.MatchedSkills...), result.MissingSkills...)

	summary := matching.AnalyzeSkillGaps(result.Candidate.Skills, wanted)
	logger.Info("skill coverage",
		zap.String("candidate_id", result.Candidate.ID),
		zap.Float64("percent", summary.Coverage),
		zap.Strings("missing", summary.MissingSkills),
	)

	gapAnalysis := result.SkillGapAnalysis
	var questions []ai.Question

	if analyzer != nil {
		if gapAnalysis == nil && len(result.MissingSkills) > 0 {
			gapAnalysis, err = analyzer.SkillGap(ctx, result.Candidate.Skills, result.MissingSkills)
			if err != nil {
				logger.Warn("skipping skill gap analysis", zap.Error(err))
				gapAnalysis = nil
			}
		}

		questions, err = analyzer.InterviewQuestions(ctx, result.Candidate, wanted, 0)
		if err != nil {
			logger.Warn("skipping interview questions", zap.Error(err))
			questions = nil
		}
	}

	if jobTitle == "" {
		jobTitle = defaultJobTitle
	}

	fmt.Println(report.Build(result, jobTitle, gapAnalysis, questions))
	return nil
}

func refineResults(ctx context.Context, cmd *cobra.Command, config *Config, results *matching.Results, analyzer ai.Analyzer, logger *zap.Logger) {
	refiner, err := ranking.NewRefiner(refinerOptions(config, analyzer, logger)...)
	if err != nil {
		logger.Fatal("building the ranking refiner", zap.Error(err))
	}

	jobDescription, companyCulture := rankingTexts(config)

	ranked, err := refiner.Rank(ctx, results, jobDescription, companyCulture)
	if err != nil {
		logger.Fatal("refinement failed", zap.Error(err))
	}

	logger.Info("refinement finished", zap.Int("count", len(ranked)))

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := rankedToFile(ranked, output); err != nil {
			logger.Fatal("writing ranked results", zap.Error(err))
		}
		logger.Info("ranked results written", zap.String("filename", output))
		return
	}

	printJSON(ranked, logger)
}

// loadDataset reads the candidate pool and reports per-record decode
// failures without aborting the run.
func loadDataset(config *Config, logger *zap.Logger) *candidate.Candidates {
	path := viper.GetString("dataset")
	if path == "" {
		path = config.Dataset
	}

	if path == "" {
		logger.Fatal("candidate dataset is required",
			zap.String("hint", "set the 'dataset' key in the configuration file or pass --dataset"),
		)
	}

	pool, recordErrs, err := candidate.Load(path)
	if err != nil {
		logger.Fatal("loading the candidate dataset", zap.Error(err), zap.String("filename", path))
	}

	for _, recordErr := range recordErrs {
		logger.Warn("skipping a malformed candidate record", zap.Error(recordErr))
	}

	logger.Info("loading candidates", zap.Int("count", pool.Len()), zap.String("filename", path))
	return pool
}

// buildRequirement merges the configured requirement with flag overrides.
// Flags win over the config.
func buildRequirement(cmd *cobra.Command, config *Config) (*matching.Requirement, error) {
	req := &matching.Requirement{}

	if config.Match != nil && config.Match.Requirement != nil {
		cfg := config.Match.Requirement
		req.RequiredSkills = cfg.RequiredSkills
		req.PreferredSkills = cfg.PreferredSkills
		req.Seniority = cfg.Seniority
		req.ExperienceYears = cfg.ExperienceYears
		req.EmploymentType = cfg.EmploymentType
		req.Locations = cfg.Locations
	}

	if skills, _ := cmd.Flags().GetStringSlice("required-skills"); len(skills) > 0 {
		req.RequiredSkills = skills
	}
	if skills, _ := cmd.Flags().GetStringSlice("preferred-skills"); len(skills) > 0 {
		req.PreferredSkills = skills
	}
	if seniority, _ := cmd.Flags().GetString("seniority"); seniority != "" {
		req.Seniority = seniority
	}
	if experience, _ := cmd.Flags().GetString("experience"); experience != "" {
		req.ExperienceYears = experience
	}
	if employment, _ := cmd.Flags().GetString("employment-type"); employment != "" {
		req.EmploymentType = employment
	}
	if locations, _ := cmd.Flags().GetStringSlice("locations"); len(locations) > 0 {
		req.Locations = locations
	}

	if len(req.RequiredSkills) == 0 && len(req.PreferredSkills) == 0 {
		return nil, errors.New("at least one required or preferred skill is needed under match.requirement")
	}

	return req, nil
}

func engineOptions(cmd *cobra.Command, config *Config, logger *zap.Logger) []matching.Option {
	opts := []matching.Option{matching.WithLogger(logger)}

	if config.Match != nil {
		if config.Match.Mode != "" {
			opts = append(opts, matching.WithMode(matching.Mode(config.Match.Mode)))
		}
		if config.Match.Weights != nil {
			opts = append(opts, matching.WithWeights(*config.Match.Weights))
		}
		if len(config.Match.SkillWeights) > 0 {
			opts = append(opts, matching.WithSkillWeights(config.Match.SkillWeights))
		}
		if config.Match.Workers > 0 {
			opts = append(opts, matching.WithWorkers(config.Match.Workers))
		}
	}

	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		opts = append(opts, matching.WithMode(matching.Mode(mode)))
	}

	return opts
}

func refinerOptions(config *Config, analyzer ai.Analyzer, logger *zap.Logger) []ranking.Option {
	opts := []ranking.Option{ranking.WithLogger(logger)}

	if config.Ranking != nil && config.Ranking.Weights != nil {
		opts = append(opts, ranking.WithWeights(*config.Ranking.Weights))
	}
	if analyzer != nil {
		opts = append(opts, ranking.WithAnalyzer(analyzer))
	}

	return opts
}

func rankingTexts(config *Config) (jobDescription, companyCulture string) {
	if config.Ranking == nil {
		return "", ""
	}
	return config.Ranking.JobDescription, config.Ranking.CompanyCulture
}

func resolveTopN(cmd *cobra.Command, config *Config) int {
	if topN, _ := cmd.Flags().GetInt("top-n"); topN > 0 {
		return topN
	}
	if config.Match != nil && config.Match.TopN > 0 {
		return config.Match.TopN
	}
	return matching.DefaultTopN
}

// buildAnalyzer returns nil when the analyzer is disabled or cannot be
// built. The commands degrade to deterministic behaviour in that case.
func buildAnalyzer(ctx context.Context, config *Config, logger *zap.Logger) ai.Analyzer {
	analyzer, err := newAnalyzer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping analyzer enrichments", zap.Error(err))
		return nil
	}
	return analyzer
}

func rankedToFile(ranked []*ranking.Ranked, path string) error {
	data, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printJSON(v any, logger *zap.Logger) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatal("encoding results", zap.Error(err))
	}
	fmt.Println(string(pretty))
}
