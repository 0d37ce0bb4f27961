package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest <partial text>",
	Short: "Look up follow-up suggestions for a partial question",
	Long: `Look up follow-up suggestions for a partial question.

Lookup failures are not errors: the command simply prints no suggestions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		env.ensureSession()
		env.conversation.FetchSuggestions(strings.Join(args, " "))

		suggestions := env.conversation.Suggestions()
		if len(suggestions) == 0 {
			fmt.Println("No suggestions.")
			return nil
		}
		for _, s := range suggestions {
			fmt.Println(suggestionStyle.Render("  - " + s))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
