package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sveetch/datebook/internal/projector"
	"github.com/sveetch/datebook/internal/store"
)

var applyCmd = LeafCommand{
	Use:   "apply MODEL",
	Short: "Fill month days from a day model",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "with-content", Usage: "also copy the model's content into the entries"},
		{Name: "yes", Usage: "skip confirmation prompts"},
	},
	StrFlags: append([]StringFlag{
		{Name: "month", Usage: "target month (YYYY-MM, default: current month)"},
		{Name: "days", Usage: `target days: "5,12,19", "weekdays", "every monday", or an RRULE`, Default: "weekdays"},
	}, storeFlags...),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		author, err := resolveAuthor(cmd)
		if err != nil {
			return err
		}

		now := time.Now()
		year, month := now.Year(), now.Month()
		if monthFlag, _ := cmd.Flags().GetString("month"); monthFlag != "" {
			if year, month, err = parsePeriod(monthFlag); err != nil {
				return err
			}
		}

		daysFlag, _ := cmd.Flags().GetString("days")
		withContent, _ := cmd.Flags().GetBool("with-content")

		confirm := NewConfirmFunc()
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			confirm = AlwaysYes()
		}

		return runApply(cmd, s, author, args[0], year, month, daysFlag, withContent, confirm)
	},
}.Build()

func runApply(
	cmd *cobra.Command,
	s *store.Store,
	author, title string,
	year int, month time.Month,
	daysFlag string,
	withContent bool,
	confirm ConfirmFunc,
) error {
	model, err := s.GetDayModel(author, title)
	if err != nil {
		return err
	}
	if model == nil {
		return fmt.Errorf("no day model %q for %s", title, author)
	}

	days, err := projector.ExpandDays(daysFlag, year, month)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return fmt.Errorf("no target days in %s %d for %q", month, year, daysFlag)
	}

	db, err := s.GetOrCreateDatebook(author, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return err
	}

	// Warn before overwriting days that were already filled in.
	var existing []int
	for _, day := range days {
		e, err := s.GetDayEntry(db.ID, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return err
		}
		if e != nil {
			existing = append(existing, day)
		}
	}
	if len(existing) > 0 {
		ok, err := confirm(fmt.Sprintf("%d day(s) already filled in (%v), overwrite them?", len(existing), existing))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := projector.New(s).Project(db, *model, days, withContent); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %s to %d day(s) of %s %d (%d updated)\n",
		Primary(title), len(days), month, year, len(existing))
	return nil
}
