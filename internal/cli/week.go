package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sveetch/datebook/internal/calendar"
	"github.com/sveetch/datebook/internal/datebook"
)

var weekCmd = LeafCommand{
	Use:      "week YYYY-MM N",
	Short:    "List the day entries of one week of a month",
	Args:     cobra.ExactArgs(2),
	StrFlags: storeFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parsePeriod(args[0])
		if err != nil {
			return err
		}
		week, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid week number %q", args[1])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		author, err := resolveAuthor(cmd)
		if err != nil {
			return err
		}

		db, err := s.GetDatebook(author, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return err
		}
		if db == nil {
			return fmt.Errorf("no datebook for %s in %s %d", author, month, year)
		}

		grid, err := calendar.BuildMonthGrid(year, month, nil, calendar.GridOptions{FirstWeekday: time.Monday})
		if err != nil {
			return err
		}
		days, err := grid.WeekDays(week)
		if err != nil {
			return err
		}

		entries, err := s.ListDayEntriesBetween(db.ID, days[0], days[len(days)-1])
		if err != nil {
			return err
		}

		byDay := make(map[int]*datebook.DayEntry, len(entries))
		for i := range entries {
			byDay[entries[i].ActivityDate.Day()] = &entries[i]
		}

		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "Week %d of %s %d\n\n", week, month, year)
		for _, day := range days {
			label := day.Format("Mon 02")
			e := byDay[day.Day()]
			switch {
			case e == nil:
				_, _ = fmt.Fprintf(w, "%s  %s\n", label, Silent("empty"))
			case e.Vacation:
				_, _ = fmt.Fprintf(w, "%s  %s\n", label, Info("vacation"))
			default:
				_, _ = fmt.Fprintf(w, "%s  %s  %s", label, e.WorkingHours(), e.ElapsedClock())
				if e.Content != "" {
					_, _ = fmt.Fprintf(w, "  %s", Silent(e.Content))
				}
				_, _ = fmt.Fprintln(w)
			}
		}
		return nil
	},
}.Build()
