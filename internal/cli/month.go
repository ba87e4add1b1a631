package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sveetch/datebook/internal/calendar"
	"github.com/sveetch/datebook/internal/datebook"
)

var monthCmd = LeafCommand{
	Use:   "month [YYYY-MM]",
	Short: "Show the month calendar with worked time totals",
	Args:  cobra.MaximumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "sunday-first", Usage: "start weeks on Sunday instead of Monday"},
	},
	StrFlags: storeFlags,
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
		if len(args) > 0 {
			if year, month, err = parsePeriod(args[0]); err != nil {
				return err
			}
		}

		first := time.Monday
		if sunday, _ := cmd.Flags().GetBool("sunday-first"); sunday {
			first = time.Sunday
		}

		db, err := s.GetDatebook(author, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return err
		}

		var entries []datebook.DayEntry
		if db != nil {
			if entries, err = s.ListDayEntries(db.ID); err != nil {
				return err
			}
		}

		grid, err := calendar.BuildMonthGrid(year, month, entries, calendar.GridOptions{
			FirstWeekday: first,
			Today:        now,
		})
		if err != nil {
			return err
		}

		totals, err := calendar.Aggregate(grid, entries, now)
		if err != nil {
			return err
		}

		colored := isatty.IsTerminal(os.Stdout.Fd())
		renderMonth(cmd.OutOrStdout(), author, db, grid, totals, colored)
		return nil
	},
}.Build()

const cellWidth = 9

// renderMonth writes the calendar grid with per-week and month totals.
func renderMonth(w io.Writer, author string, db *datebook.Datebook, grid calendar.Grid, totals calendar.MonthTotals, colored bool) {
	title := fmt.Sprintf("%s %d - %s", grid.Month, grid.Year, author)
	if colored {
		title = headerStyle.Render(title)
	}
	_, _ = fmt.Fprintf(w, "%s\n\n", title)

	var header strings.Builder
	for _, label := range calendar.WeekdayHeader(grid.Weeks[0][0].Date.Weekday()) {
		header.WriteString(fmt.Sprintf("%-*s", cellWidth, label))
	}
	header.WriteString("  Week")
	line := header.String()
	if colored {
		line = headerStyle.Render(line)
	}
	_, _ = fmt.Fprintln(w, line)

	for i, week := range grid.Weeks {
		var row strings.Builder
		for _, cell := range week {
			row.WriteString(renderCell(cell, colored))
		}
		wt := totals.Weeks[i]
		row.WriteString(fmt.Sprintf("  %s", wt.Elapsed))
		if wt.Current {
			row.WriteString(" <")
		}
		_, _ = fmt.Fprintln(w, row.String())
	}

	_, _ = fmt.Fprintf(w, "\nWorked %s", totals.Elapsed)
	if totals.OvertimeSeconds > 0 {
		_, _ = fmt.Fprintf(w, ", overtime %s", totals.Overtime)
	}
	if totals.VacationCount > 0 {
		_, _ = fmt.Fprintf(w, ", %d vacation day(s)", totals.VacationCount)
	}
	_, _ = fmt.Fprintln(w)

	if db == nil {
		_, _ = fmt.Fprintln(w, Silent("No datebook for this month yet."))
	} else if db.Notes != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", db.Notes)
	}
}

func renderCell(cell calendar.Cell, colored bool) string {
	if cell.NoDay {
		return fmt.Sprintf("%-*s", cellWidth, "  .")
	}

	badge := ""
	switch {
	case cell.Entry != nil && cell.Entry.Vacation:
		badge = "vac"
	case cell.Entry != nil:
		badge = cell.Entry.ElapsedClock()
	}

	text := fmt.Sprintf("%3d %-5s", cell.Date.Day(), badge)
	if colored && cell.Current {
		// Styled width must match the plain cell width.
		return currentStyle.Render(text)
	}
	return text
}
