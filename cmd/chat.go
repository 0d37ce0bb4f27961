package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Start an interactive chat with continuous conversation.

The local conversation history is restored at startup, and every answer is
persisted as the conversation progresses.

Commands inside the chat:
  /new        archive the conversation and start a fresh session
  /suggest    look up follow-up suggestions for a partial question
  /citations  show the citations for the latest answer
  /history    show the full transcript
  /help       show available commands
  /exit       leave the chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		env.conversation.Restore()
		env.ensureSession()

		return runInteractiveChat(env)
	},
}

// runInteractiveChat runs the chat REPL.
func runInteractiveChat(env *chatEnv) error {
	fmt.Fprintf(os.Stderr, "\n=== docchat ===\n")
	fmt.Fprintf(os.Stderr, "Service: %s\n", env.client.BaseURL())
	if id := env.sessions.Current(); id != "" {
		fmt.Fprintf(os.Stderr, "Session: %s\n", id)
	}
	if n := len(env.conversation.History()); n > 0 {
		fmt.Fprintf(os.Stderr, "Restored %d message(s) from previous conversation.\n", n)
	}
	fmt.Fprintf(os.Stderr, "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit\n")
	fmt.Fprintf(os.Stderr, "===============\n\n")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(os.Stderr, "You> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			fmt.Fprintln(os.Stderr, "\nGoodbye!")
			return nil
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleChatCommand(input, env) {
				continue
			}
			return nil
		}

		done := make(chan bool)
		go showSpinner(done)

		env.conversation.SendMessage(input)

		done <- true
		close(done)

		printLatestAnswer(env)
		fmt.Println()
	}
}

// handleChatCommand processes a /command. Returns false when the chat
// should end.
func handleChatCommand(input string, env *chatEnv) bool {
	parts := strings.SplitN(input, " ", 2)
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch parts[0] {
	case "/exit", "/quit":
		fmt.Fprintln(os.Stderr, "Goodbye!")
		return false

	case "/help":
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  /new             archive the conversation and start a fresh session")
		fmt.Fprintln(os.Stderr, "  /suggest <text>  look up follow-up suggestions")
		fmt.Fprintln(os.Stderr, "  /citations       show citations for the latest answer")
		fmt.Fprintln(os.Stderr, "  /history         show the full transcript")
		fmt.Fprintln(os.Stderr, "  /exit            leave the chat")

	case "/new":
		id := env.conversation.StartNewChat()
		if id == "" {
			fmt.Fprintln(os.Stderr, "New chat started, but no session could be acquired. Answers may be less relevant.")
		} else {
			fmt.Fprintf(os.Stderr, "New chat started. Session: %s\n", id)
		}

	case "/suggest":
		env.conversation.FetchSuggestions(arg)
		suggestions := env.conversation.Suggestions()
		if len(suggestions) == 0 {
			fmt.Fprintln(os.Stderr, "No suggestions.")
			break
		}
		for _, s := range suggestions {
			fmt.Println(suggestionStyle.Render("  - " + s))
		}

	case "/citations":
		citations := env.conversation.Citations()
		if len(citations) == 0 {
			fmt.Fprintln(os.Stderr, "No citations for the latest answer.")
			break
		}
		for i, c := range citations {
			fmt.Println(citationStyle.Render(fmt.Sprintf("  [%d] %s", i+1, c)))
		}

	case "/history":
		printTranscript(env.conversation.History())

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s (try /help)\n", parts[0])
	}

	return true
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
