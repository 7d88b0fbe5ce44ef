package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobflow"

	defaultTopN = 25
)

// Config is the application configuration, unmarshalled from jobflow.yaml.
type Config struct {
	// Sources is the path to the sources definition YAML.
	Sources string `mapstructure:"sources"`
	// Output is the directory run artifacts are written to.
	Output string `mapstructure:"output"`
	// TopN caps the apply pack size.
	TopN     int             `mapstructure:"top-n"`
	Matching *MatchingConfig `mapstructure:"matching"`
}

// MatchingConfig carries the configurable parts of the scoring engine.
type MatchingConfig struct {
	// Adjacent overrides the seniority adjacency table. Keys and values
	// are lowercase seniority levels; pairs listed here get partial
	// credit instead of a mismatch.
	Adjacent map[string][]string `mapstructure:"adjacent"`
}

// AdjacencyTable returns the configured adjacency table or nil for the
// built-in default.
func (c *Config) AdjacencyTable() map[string][]string {
	if c == nil || c.Matching == nil || len(c.Matching.Adjacent) == 0 {
		return nil
	}
	return c.Matching.Adjacent
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobflow discovers job postings, scores them against a candidate profile and keeps an application queue",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobflow.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// An explicit config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The implicit config file is optional; flags and defaults carry a
	// run without one.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{TopN: defaultTopN}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	if config.TopN <= 0 {
		config.TopN = defaultTopN
	}

	return config, nil
}

// sourcesPath resolves the sources definition file for a command. The
// command's own --sources flag wins over the config; the key is not bound
// through viper because several commands carry the same flag.
func sourcesPath(cmd *cobra.Command, config *Config) string {
	if path, _ := cmd.Flags().GetString("sources"); path != "" {
		return path
	}
	return config.Sources
}
