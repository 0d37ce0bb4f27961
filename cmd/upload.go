package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a document for indexing",
	Long: `Upload a document to the Q&A service so its contents can be used
to answer questions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		defer f.Close()

		userID := env.ensureSession()

		done := make(chan bool)
		go showSpinner(done)

		message, err := env.client.Upload(userID, filepath.Base(path), f)

		done <- true
		close(done)

		if err != nil {
			return fmt.Errorf("uploading file: %w", err)
		}

		if message == "" {
			message = "File uploaded."
		}
		fmt.Println(message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
