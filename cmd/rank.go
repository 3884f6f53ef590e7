package cmd

import (
	"context"
	"log"

	"github.com/naukri-ai/talent-ranker/internal/candidate"
	"github.com/naukri-ai/talent-ranker/internal/logger"
	"github.com/naukri-ai/talent-ranker/internal/matching"
	"github.com/naukri-ai/talent-ranker/internal/ranking"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Refine a previously dumped match result file with the ranking pass",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("results", "f", "", "path to a match results file")
	rankCmd.Flags().String("candidates", "", "rank a raw candidate dataset instead of match results")
	rankCmd.Flags().String("name", "", "limit a raw dataset ranking to one candidate by name")
	rankCmd.Flags().String("job-description", "", "job description text (overrides the config)")
	rankCmd.Flags().String("company-culture", "", "company culture text (overrides the config)")
	rankCmd.Flags().StringP("output", "o", "", "write ranked results to the given file")

	rankCmd.MarkFlagsOneRequired("results", "candidates")
	rankCmd.MarkFlagsMutuallyExclusive("results", "candidates")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	results := rankInput(cmd, logger)
	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no results to rank"))
		return
	}

	analyzer := buildAnalyzer(ctx, config, logger)

	refiner, err := ranking.NewRefiner(refinerOptions(config, analyzer, logger)...)
	if err != nil {
		logger.Fatal("building the ranking refiner", zap.Error(err))
	}

	jobDescription, companyCulture := rankingTexts(config)
	if text, _ := cmd.Flags().GetString("job-description"); text != "" {
		jobDescription = text
	}
	if text, _ := cmd.Flags().GetString("company-culture"); text != "" {
		companyCulture = text
	}

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

// rankInput loads either a match results file or a raw candidate dataset.
// Raw candidates enter the pass with a neutral skill score since no matching
// stage evaluated them.
func rankInput(cmd *cobra.Command, logger *zap.Logger) *matching.Results {
	if path, _ := cmd.Flags().GetString("results"); path != "" {
		results, err := matching.ResultsFromFile(path)
		if err != nil {
			logger.Fatal("reading match results", zap.Error(err), zap.String("filename", path))
		}
		logger.Info("loading match results", zap.Int("count", results.Len()), zap.String("filename", path))
		return results
	}

	path, _ := cmd.Flags().GetString("candidates")

	pool, recordErrs, err := candidate.Load(path)
	if err != nil {
		logger.Fatal("loading the candidate dataset", zap.Error(err), zap.String("filename", path))
	}
	for _, recordErr := range recordErrs {
		logger.Warn("skipping a malformed candidate record", zap.Error(recordErr))
	}

	items := pool.Items
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		selected := pool.FindByName(name)
		if selected == nil {
			logger.Fatal("candidate with given name not found",
				zap.Any("existed candidate names", pool.Names()),
				zap.String("candidate name", name),
			)
		}
		items = []*candidate.Candidate{selected}
	}

	results := &matching.Results{Items: make([]*matching.Result, 0, len(items))}
	for _, item := range items {
		results.Items = append(results.Items, ranking.FromCandidate(item))
	}

	logger.Info("loading candidates", zap.Int("count", results.Len()), zap.String("filename", path))
	return results
}
