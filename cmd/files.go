package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var filesOutput string

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Access files indexed by the Q&A service",
}

// filesGetCmd represents the files get command
var filesGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Fetch an indexed file by name",
	Long: `Fetch an indexed file by name and write it to stdout, or to a file
when --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		userID := env.ensureSession()

		data, err := env.client.GetFile(userID, args[0])
		if err != nil {
			return fmt.Errorf("fetching file: %w", err)
		}

		if filesOutput == "" {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(filesOutput, data, 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "File written to %s\n", filesOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesGetCmd)

	filesGetCmd.Flags().StringVarP(&filesOutput, "output", "o", "", "Output file (default: stdout)")
}
