package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/docqa/docchat/internal/docchat"
	"github.com/docqa/docchat/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the local conversation history",
	Long: `Inspect and manage the locally persisted conversation history.

The active transcript survives restarts; archived conversations are kept
when a new chat is started.`,
}

// historyShowCmd represents the history show command
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		history := env.store.Load()
		if len(history) == 0 {
			fmt.Println("No conversation history.")
			return nil
		}

		printTranscript(history)
		return nil
	},
}

// historyClearCmd represents the history clear command
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the active transcript",
	Long: `Delete the locally persisted active transcript.

Archived conversations are not affected.

Warning: This action cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		if err := env.store.Clear(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}

		fmt.Println("Conversation history cleared.")
		return nil
	},
}

// historyExportCmd represents the history export command
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active transcript",
	Long: `Export the active transcript in a shareable format.

Supported formats: json, yaml, md. Output goes to stdout unless --output
is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		transcript := &export.Transcript{
			ExportedAt: time.Now(),
			Messages:   env.store.Load(),
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := exporter.Export(transcript, out); err != nil {
			return fmt.Errorf("exporting transcript: %w", err)
		}

		if exportOutput != "" {
			fmt.Fprintf(os.Stderr, "Transcript exported to %s\n", exportOutput)
		}
		return nil
	},
}

// historyArchivesCmd represents the history archives command
var historyArchivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List archived conversations",
	Long:  `List conversations archived when a new chat was started, sorted by most recent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildChatEnv()
		if err != nil {
			return err
		}

		archives, err := env.store.Archives()
		if err != nil {
			return fmt.Errorf("listing archives: %w", err)
		}

		if len(archives) == 0 {
			fmt.Println("No archived conversations.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tARCHIVED\tMESSAGES")
		fmt.Fprintln(w, "--\t--------\t--------")
		for _, a := range archives {
			id := a.ID
			if len(id) >= 8 {
				id = id[:8]
			}
			fmt.Fprintf(w, "%s\t%s\t%d\n", id, a.ArchivedAt.Format("2006-01-02 15:04"), len(a.Messages))
		}
		w.Flush()
		return nil
	},
}

// printTranscript prints a transcript with role styling.
func printTranscript(history []docchat.Message) {
	for i, msg := range history {
		label := "You"
		switch msg.Role {
		case docchat.RoleAssistant:
			label = "Assistant"
		case docchat.RoleError:
			label = "Error"
		}

		timestamp := ""
		if !msg.Timestamp.IsZero() {
			timestamp = " (" + msg.Timestamp.Format("2006-01-02 15:04:05") + ")"
		}

		fmt.Printf("\n[%d] %s%s:\n%s\n", i+1, label, timestamp, styleForRole(msg.Role).Render(msg.Content))
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyArchivesCmd)

	historyExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, yaml, md)")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}
