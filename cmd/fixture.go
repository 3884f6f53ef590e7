package cmd

import (
	"log"
	"time"

	"github.com/naukri-ai/talent-ranker/internal/candidate"
	"github.com/naukri-ai/talent-ranker/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultFixtureCount = 500

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Generate a synthetic candidate dataset",
	Run: func(cmd *cobra.Command, _ []string) {
		fixture(cmd)
	},
}

func init() {
	rootCmd.AddCommand(fixtureCmd)

	fixtureCmd.Flags().IntP("count", "c", defaultFixtureCount, "number of candidates to generate")
	fixtureCmd.Flags().StringP("output", "o", "candidates.json", "output file")
	fixtureCmd.Flags().Int64("seed", 0, "random seed, 0 uses the current time")
}

func fixture(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	count, _ := cmd.Flags().GetInt("count")
	output, _ := cmd.Flags().GetString("output")

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	generator := candidate.NewGenerator(seed)

	if err := generator.SaveJSON(output, count); err != nil {
		logger.Fatal("writing the dataset", zap.Error(err))
	}

	logger.Info("dataset generated",
		zap.Int("count", count),
		zap.Int64("seed", seed),
		zap.String("filename", output),
	)
}
