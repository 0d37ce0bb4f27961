package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docqa/docchat/internal/docchat/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: configfile, base_url, timeout_seconds, state_dir, fallback_response, suggest_debounce_ms

Examples:
  docchat config                # Show all configuration
  docchat config base_url       # Show only the service base URL
  docchat config state_dir      # Show only the state directory`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if len(args) > 0 {
			field := strings.ToLower(args[0])
			switch field {
			case "configfile":
				fmt.Println(viper.ConfigFileUsed())
			case "base_url", "baseurl":
				fmt.Println(cfg.BaseURL)
			case "timeout_seconds", "timeout":
				fmt.Println(cfg.TimeoutSeconds)
			case "state_dir", "statedir":
				fmt.Println(cfg.StateDir)
			case "fallback_response", "fallback":
				fmt.Println(cfg.FallbackResponse)
			case "suggest_debounce_ms", "suggestdebounce":
				fmt.Println(cfg.SuggestDebounceMS)
			default:
				fmt.Fprintf(os.Stderr, "Unknown field: %s\n", field)
				os.Exit(1)
			}
			return
		}

		fmt.Println("Configuration:")
		fmt.Printf("  config file:         %s\n", viper.ConfigFileUsed())
		fmt.Printf("  base_url:            %s\n", cfg.BaseURL)
		fmt.Printf("  timeout_seconds:     %d\n", cfg.TimeoutSeconds)
		fmt.Printf("  state_dir:           %s\n", cfg.StateDir)
		fmt.Printf("  fallback_response:   %s\n", cfg.FallbackResponse)
		fmt.Printf("  suggest_debounce_ms: %d\n", cfg.SuggestDebounceMS)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
