package cmd

import (
	"log"

	"github.com/naukri-ai/talent-ranker/internal/matching"
	"github.com/naukri-ai/talent-ranker/internal/ranking"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talent-ranker"
)

// Config is the root configuration, read from talent-ranker.yaml.
type Config struct {
	Dataset string         `mapstructure:"dataset"`
	Match   *MatchConfig   `mapstructure:"match"`
	Ranking *RankingConfig `mapstructure:"ranking"`
	AI      *AIConfig      `mapstructure:"ai"`
}

type MatchConfig struct {
	Mode         string                `mapstructure:"mode"`
	TopN         int                   `mapstructure:"top-n"`
	Workers      int                   `mapstructure:"workers"`
	Weights      *matching.Weights     `mapstructure:"weights"`
	SkillWeights matching.SkillWeights `mapstructure:"skill-weights"`
	Requirement  *RequirementConfig    `mapstructure:"requirement"`
}

type RequirementConfig struct {
	RequiredSkills  []string `mapstructure:"required-skills"`
	PreferredSkills []string `mapstructure:"preferred-skills"`
	Seniority       string   `mapstructure:"seniority"`
	ExperienceYears string   `mapstructure:"experience-years"`
	EmploymentType  string   `mapstructure:"employment-type"`
	Locations       []string `mapstructure:"locations"`
}

type RankingConfig struct {
	Weights        *ranking.Weights `mapstructure:"weights"`
	JobDescription string           `mapstructure:"job-description"`
	CompanyCulture string           `mapstructure:"company-culture"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	MaxRetries     int    `mapstructure:"max-retries"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-ranker scores and ranks candidates from a dataset against job requirements",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Local development convenience: GEMINI_API_KEY_FILE may live in .env.
	_ = godotenv.Load()

	// Only commands that consume the config need it; skip initialization
	// for the rest.
	configured := []*cobra.Command{matchCmd, rankCmd, statsCmd, compareCmd, verifyCmd}

	needsConfig := false
	for _, command := range configured {
		if command.CalledAs() != "" {
			needsConfig = true
			break
		}
	}
	if !needsConfig {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
