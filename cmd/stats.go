package cmd

import (
	"log"

	"github.com/naukri-ai/talent-ranker/internal/candidate"
	"github.com/naukri-ai/talent-ranker/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultTopSkills = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics for the candidate dataset",
	Run: func(cmd *cobra.Command, _ []string) {
		stats(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringP("dataset", "f", "", "path to the candidate dataset (overrides the config)")
	statsCmd.Flags().IntP("top-skills", "n", defaultTopSkills, "number of top skills to report")
	statsCmd.Flags().String("seniority", "", "limit the skill report to one seniority level")
}

func stats(cmd *cobra.Command) {
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

	if path, _ := cmd.Flags().GetString("dataset"); path != "" {
		viper.Set("dataset", path)
	}

	pool := loadDataset(config, logger)

	topN, _ := cmd.Flags().GetInt("top-skills")

	summary := struct {
		Total          int                      `json:"total_candidates"`
		Seniority      []candidate.Distribution `json:"seniority_distribution"`
		Experience     []candidate.Distribution `json:"experience_distribution"`
		EmploymentType []candidate.Distribution `json:"employment_type_distribution"`
		TopSkills      []candidate.SkillCount   `json:"top_skills"`
	}{
		Total:          pool.Len(),
		Seniority:      pool.SeniorityDistribution(),
		Experience:     pool.ExperienceDistribution(),
		EmploymentType: pool.EmploymentTypeDistribution(),
	}

	if seniority, _ := cmd.Flags().GetString("seniority"); seniority != "" {
		summary.TopSkills = pool.SkillsBySeniority(seniority, topN)
	} else {
		summary.TopSkills = pool.TopSkills(topN)
	}

	printJSON(summary, logger)
}
