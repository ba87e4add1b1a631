package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sveetch/datebook/internal/datebook"
	"github.com/sveetch/datebook/internal/timeutil"
)

var modelsCmd = GroupCommand{
	Use:   "models",
	Short: "Manage reusable day models",
	Subcommands: []*cobra.Command{
		modelsListCmd,
		modelsAddCmd,
		modelsRemoveCmd,
		modelsFromDayCmd,
	},
}.Build()

var modelsListCmd = LeafCommand{
	Use:      "list",
	Short:    "List your day models",
	Args:     cobra.NoArgs,
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

		models, err := s.ListDayModels(author)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(models) == 0 {
			_, _ = fmt.Fprintln(w, Silent("No day models yet."))
			return nil
		}
		for _, m := range models {
			entry := datebook.DayEntry{Start: m.Start, Stop: m.Stop, Pause: m.Pause}
			_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
				Primary(m.Title), entry.WorkingHours(), entry.ElapsedClock())
		}
		return nil
	},
}.Build()

var modelsAddCmd = LeafCommand{
	Use:   "add TITLE",
	Short: "Create a day model",
	Args:  cobra.ExactArgs(1),
	StrFlags: append([]StringFlag{
		{Name: "start", Usage: "start time (e.g. 9am, 09:00)", Default: "09:00"},
		{Name: "stop", Usage: "stop time (e.g. 6pm, 18:00)", Default: "18:00"},
		{Name: "pause", Usage: "pause duration (e.g. 1h, 30m)", Default: "1h"},
		{Name: "overtime", Usage: "overtime duration (e.g. 30m)", Default: "0m"},
		{Name: "content", Usage: "template content"},
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

		startFlag, _ := cmd.Flags().GetString("start")
		stopFlag, _ := cmd.Flags().GetString("stop")
		pauseFlag, _ := cmd.Flags().GetString("pause")
		overtimeFlag, _ := cmd.Flags().GetString("overtime")
		content, _ := cmd.Flags().GetString("content")

		start, err := timeutil.ParseTimeOfDay(startFlag)
		if err != nil {
			return err
		}
		stop, err := timeutil.ParseTimeOfDay(stopFlag)
		if err != nil {
			return err
		}
		pause, err := timeutil.ParseClockDuration(pauseFlag)
		if err != nil {
			return err
		}
		overtime, err := timeutil.ParseClockDuration(overtimeFlag)
		if err != nil {
			return err
		}

		// The stored date is a placeholder; only the time of day matters.
		anchor := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		model := datebook.DayModel{
			Author:   author,
			Title:    args[0],
			Content:  content,
			Start:    start.On(anchor, time.UTC),
			Stop:     stop.On(anchor, time.UTC),
			Pause:    pause,
			Overtime: overtime,
		}
		if !model.Stop.After(model.Start) {
			return fmt.Errorf("stop time %s must be after start time %s", stop, start)
		}

		if err := s.SaveDayModel(&model); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created day model %s\n", Primary(model.Title))
		return nil
	},
}.Build()

var modelsRemoveCmd = LeafCommand{
	Use:      "rm TITLE",
	Short:    "Delete a day model",
	Args:     cobra.ExactArgs(1),
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

		if err := s.DeleteDayModel(author, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted day model %s\n", Primary(args[0]))
		return nil
	},
}.Build()

var modelsFromDayCmd = LeafCommand{
	Use:      "from-day TITLE YYYY-MM-DD",
	Short:    "Create a day model out of an existing day entry",
	Args:     cobra.ExactArgs(2),
	StrFlags: storeFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[1])
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

		db, err := s.GetDatebook(author, date)
		if err != nil {
			return err
		}
		if db == nil {
			return fmt.Errorf("no datebook for %s in %s %d", author, date.Month(), date.Year())
		}

		e, err := s.GetDayEntry(db.ID, date)
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("no day entry on %s", args[1])
		}

		model := datebook.ModelFromEntry(author, args[0], *e)
		if err := s.SaveDayModel(&model); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created day model %s from %s\n", Primary(args[0]), args[1])
		return nil
	},
}.Build()
