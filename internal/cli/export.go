package cli

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/spf13/cobra"

	"github.com/sveetch/datebook/internal/calendar"
	"github.com/sveetch/datebook/internal/datebook"
)

var exportCmd = LeafCommand{
	Use:   "export YYYY-MM",
	Short: "Export a month sheet as PDF",
	Args:  cobra.ExactArgs(1),
	StrFlags: append([]StringFlag{
		{Name: "output", Usage: "output file path (default: datebook-YYYY-MM.pdf)"},
	}, storeFlags...),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parsePeriod(args[0])
		if err != nil {
			return err
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

		entries, err := s.ListDayEntries(db.ID)
		if err != nil {
			return err
		}

		grid, err := calendar.BuildMonthGrid(year, month, entries, calendar.GridOptions{FirstWeekday: time.Monday})
		if err != nil {
			return err
		}
		totals, err := calendar.Aggregate(grid, entries, time.Now())
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = fmt.Sprintf("datebook-%s.pdf", args[0])
		}

		if err := renderMonthPDF(author, grid, entries, totals, output); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s %d to %s\n", month, year, Primary(output))
		return nil
	},
}.Build()

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// renderMonthPDF generates a PDF month sheet from the day entries and totals
// and saves it to the given path.
func renderMonthPDF(author string, grid calendar.Grid, entries []datebook.DayEntry, totals calendar.MonthTotals, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	// Document header
	m.AddRow(14,
		text.NewCol(12, author, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%s %d", grid.Month, grid.Year), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4) // spacer

	for _, e := range entries {
		dayLabel := e.ActivityDate.Format("Mon 02")
		detail := e.WorkingHours()
		amount := e.ElapsedClock()
		if e.Vacation {
			detail = "vacation"
			amount = ""
		}

		m.AddRow(6,
			text.NewCol(3, dayLabel, props.Text{Size: 9}),
			text.NewCol(6, detail, props.Text{Size: 9, Color: &pdfMutedColor}),
			text.NewCol(3, amount, props.Text{
				Size:  9,
				Align: align.Right,
			}),
		)
		if e.Content != "" {
			m.AddRow(5,
				text.NewCol(12, "    "+e.Content, props.Text{
					Size:  8,
					Color: &pdfMutedColor,
				}),
			)
		}
	}

	// Totals footer
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(9, "Worked", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, totals.Elapsed, props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)
	if totals.OvertimeSeconds > 0 {
		m.AddRow(8,
			text.NewCol(9, "Overtime", props.Text{Size: 10, Color: &pdfMutedColor}),
			text.NewCol(3, totals.Overtime, props.Text{
				Size:  10,
				Align: align.Right,
				Color: &pdfMutedColor,
			}),
		)
	}
	if totals.VacationCount > 0 {
		m.AddRow(8,
			text.NewCol(12, fmt.Sprintf("%d vacation day(s)", totals.VacationCount), props.Text{
				Size:  10,
				Color: &pdfMutedColor,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
