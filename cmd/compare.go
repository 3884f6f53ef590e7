package cmd

import (
	"context"
	"log"
	"os"

	"github.com/naukri-ai/talent-ranker/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare <first-profile> <second-profile>",
	Short: "Compare two candidate profile files with the analyzer",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		compare(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("criteria", "", "recruiter criteria for the comparison")
}

func compare(cmd *cobra.Command, args []string) {
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

	analyzer, err := newAnalyzer(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the analyzer", zap.Error(err))
	}
	if analyzer == nil {
		logger.Fatal("the analyzer is required for profile comparison",
			zap.String("hint", "set ai.enabled to true in the configuration file"),
		)
	}

	first, err := os.ReadFile(args[0])
	if err != nil {
		logger.Fatal("reading the first profile", zap.Error(err))
	}

	second, err := os.ReadFile(args[1])
	if err != nil {
		logger.Fatal("reading the second profile", zap.Error(err))
	}

	criteria, _ := cmd.Flags().GetString("criteria")

	comparison, err := analyzer.CompareProfiles(ctx, string(first), string(second), criteria)
	if err != nil {
		logger.Fatal("comparing profiles", zap.Error(err))
	}

	printJSON(comparison, logger)
}
