package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <history-file>",
	Short: "Screen an employment history file for red flags with the analyzer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		verify(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("name", "", "candidate name the history belongs to")
}

func verify(cmd *cobra.Command, args []string) {
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
		logger.Fatal("the analyzer is required for employment verification",
			zap.String("hint", "set ai.enabled to true in the configuration file"),
		)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		logger.Fatal("reading the employment history", zap.Error(err))
	}

	var history []ai.EmploymentRecord
	if err := json.Unmarshal(data, &history); err != nil {
		logger.Fatal("employment history is not a list of records", zap.Error(err))
	}

	name, _ := cmd.Flags().GetString("name")

	verification, err := analyzer.VerifyEmployment(ctx, name, history)
	if err != nil {
		logger.Fatal("verifying employment history", zap.Error(err))
	}

	logger.Info("verification finished",
		zap.String("status", verification.OverallStatus),
		zap.Int("red_flags", len(verification.RedFlags)),
	)

	printJSON(verification, logger)
}
