package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// sessionCmd represents the session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the session identifier",
	Long: `Manage the session identifier issued by the Q&A service.

The identifier is attached to every request and persists across restarts.`,
}

// sessionShowCmd represents the session show command
var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current session identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		id := env.sessions.Current()
		if id == "" {
			fmt.Println("No session. One will be acquired on the next ask, or run 'docchat session reset'.")
			return nil
		}
		fmt.Println(id)
		return nil
	},
}

// sessionResetCmd represents the session reset command
var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the session identifier and acquire a new one",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		id := env.sessions.Reset()
		if id == "" {
			fmt.Println("Session cleared, but no new session could be acquired. The next ask will proceed without one.")
			return nil
		}
		fmt.Printf("New session: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionResetCmd)
}
