package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/database"
	"github.com/seoscan/seoscan/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "List past audits stored in the database",
		Long: `History lists the audits that serve mode has persisted.

Without arguments it lists the distinct root URLs that have been audited.
With a root URL argument it lists that URL's audits, newest first, so a
site's SEO health can be tracked over time.

Examples:
  # List all audited root URLs
  seoscan history

  # List all audits of one site
  seoscan history https://example.com

  # Read from a custom database directory
  seoscan history --db /var/lib/seoscan`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db", config.XDGDataDir(),
		"Directory for the SQLite audit database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}

	// History never creates a database: an empty history is a missing
	// file, not a fresh one.
	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no audit history: %w", err)
	}
	defer db.Close()

	if len(args) == 0 {
		return listAuditedURLs(cmd, db)
	}
	return listAuditsForURL(cmd, db, args[0])
}

// listAuditedURLs prints the distinct root URLs in the database.
func listAuditedURLs(cmd *cobra.Command, db *database.AuditDB) error {
	urls, err := db.ListURLs(cmd.Context())
	if err != nil {
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audits recorded yet.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Audited root URLs (%d):\n", len(urls))
	for _, u := range urls {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", u)
	}
	return nil
}

// listAuditsForURL prints one root URL's audits, newest first.
func listAuditsForURL(cmd *cobra.Command, db *database.AuditDB, rootURL string) error {
	audits, err := db.ListByURL(cmd.Context(), rootURL)
	if err != nil {
		return err
	}

	if len(audits) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No audits recorded for %s.\n", rootURL)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Audits for %s (%d):\n", rootURL, len(audits))
	for _, a := range audits {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %-9s  %s\n",
			a.CreatedAt.Format("2006-01-02 15:04:05"), a.ID, a.Status, describeOutcome(a))
	}
	return nil
}

// describeOutcome summarizes an audit's terminal state in one phrase.
func describeOutcome(a *model.Audit) string {
	switch {
	case a.Status == model.StatusCompleted && a.Results != nil:
		return fmt.Sprintf("%d pages, %d issues",
			a.Results.PagesCrawled, model.TotalIssues(a.Results.Pages))
	case a.Status == model.StatusFailed:
		return a.Error
	default:
		return "-"
	}
}
