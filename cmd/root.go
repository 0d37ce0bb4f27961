package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docqa/docchat/internal/docchat/config"
	"github.com/docqa/docchat/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "A CLI client for a document question-answering service",
	Long: `docchat is a command-line client for a remote document Q&A service.
You can ask questions, upload documents for indexing, and view the
citations and follow-up suggestions returned with each answer.
Conversation history is kept locally and can be exported.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/docchat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	logging.SetVerbose(verbose)

	viper.SetEnvPrefix("DOCCHAT")
	viper.AutomaticEnv()

	// Determine config directory for user config
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "docchat")

	// Set default values
	defaultConfig := config.NewDefaultConfig(filepath.Join(userConfigDir, "state"))
	viper.SetDefault("base_url", defaultConfig.BaseURL)
	viper.SetDefault("timeout_seconds", defaultConfig.TimeoutSeconds)
	viper.SetDefault("state_dir", defaultConfig.StateDir)
	viper.SetDefault("fallback_response", defaultConfig.FallbackResponse)
	viper.SetDefault("suggest_debounce_ms", defaultConfig.SuggestDebounceMS)

	// Bind environment variables
	viper.BindEnv("base_url", "DOCCHAT_BASE_URL")
	viper.BindEnv("timeout_seconds", "DOCCHAT_TIMEOUT_SECONDS")
	viper.BindEnv("state_dir", "DOCCHAT_STATE_DIR")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)

		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		// Load system-wide config first (lower priority)
		viper.AddConfigPath("/etc/docchat")
		viper.AddConfigPath("/usr/local/etc/docchat")
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		systemConfigLoaded := false
		if err := viper.ReadInConfig(); err == nil {
			systemConfigLoaded = true
			logging.Debugf("loaded system-wide config: %s", viper.ConfigFileUsed())
		}

		// Load user config (higher priority) - merge with system config
		viper.AddConfigPath(userConfigDir)
		if systemConfigLoaded {
			if err := viper.MergeInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error merging user config file: %v\n", err)
				}
			} else {
				logging.Debugf("merged user config: %s", viper.ConfigFileUsed())
			}
		} else {
			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				}
			}
		}
	}

	if verbose {
		logging.Debugf("using config file: %s", viper.ConfigFileUsed())
		logging.Debugf("base_url: %s", viper.GetString("base_url"))
		logging.Debugf("state_dir: %s", viper.GetString("state_dir"))
	}
}
