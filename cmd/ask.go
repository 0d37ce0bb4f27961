package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var newChat bool

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the Q&A service a question",
	Long: `Ask the Q&A service a single question and print the answer.

The answer is appended to the local conversation history, together with
any citations and follow-up suggestions the service returns.

If no question is provided as an argument, it reads from stdin.

For interactive multi-turn conversations, use 'docchat chat' instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		// Get question from arguments or stdin
		var question string
		if len(args) > 0 {
			question = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			question = strings.TrimSpace(string(input))
		}
		if strings.TrimSpace(question) == "" {
			return fmt.Errorf("question is empty")
		}

		env.conversation.Restore()

		if newChat {
			env.conversation.StartNewChat()
		} else {
			env.ensureSession()
		}

		done := make(chan bool)
		go showSpinner(done)

		env.conversation.SendMessage(question)

		done <- true
		close(done)

		printLatestAnswer(env)
		return nil
	},
}

// printLatestAnswer prints the most recent transcript entry plus the
// citations and suggestions attached to it.
func printLatestAnswer(env *chatEnv) {
	history := env.conversation.History()
	if len(history) == 0 {
		return
	}
	last := history[len(history)-1]
	fmt.Println(styleForRole(last.Role).Render(last.Content))

	if citations := env.conversation.Citations(); len(citations) > 0 {
		fmt.Println()
		fmt.Println(citationStyle.Render("Sources:"))
		for i, c := range citations {
			fmt.Println(citationStyle.Render(fmt.Sprintf("  [%d] %s", i+1, c)))
		}
	}

	if suggestions := env.conversation.Suggestions(); len(suggestions) > 0 {
		fmt.Println()
		fmt.Println(suggestionStyle.Render("Follow-up suggestions:"))
		for _, s := range suggestions {
			fmt.Println(suggestionStyle.Render("  - " + s))
		}
	}
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVarP(&newChat, "new-chat", "n", false, "Archive the current conversation and start a fresh session first")
}
