package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sveetch/datebook/internal/store"
)

// dbFlag and authorFlag are shared by every command touching the store.
var storeFlags = []StringFlag{
	{Name: "db", Usage: "path to the datebook database (default: ~/.datebook/datebook.db)"},
	{Name: "author", Usage: "datebook author (default: current user)"},
}

// openStore opens the SQLite store from the --db flag, defaulting under the
// user's home directory.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(homeDir, ".datebook", "datebook.db")
	}
	return store.New(path)
}

// resolveAuthor returns the --author flag or falls back to the OS user name.
func resolveAuthor(cmd *cobra.Command) (string, error) {
	author, _ := cmd.Flags().GetString("author")
	if author != "" {
		return author, nil
	}
	if user := os.Getenv("USER"); user != "" {
		return user, nil
	}
	return "", fmt.Errorf("no author given and $USER is not set, use --author")
}

// parsePeriod parses a "YYYY-MM" month argument.
func parsePeriod(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}
