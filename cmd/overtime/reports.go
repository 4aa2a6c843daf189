package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/overtime-tracker/internal/overtime"
	"github.com/username/overtime-tracker/internal/report"
	"github.com/username/overtime-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Merge hours from a filled spreadsheet into the logs",
		Long: "Merge hours from a spreadsheet. Rows are matched to employees by exact name; " +
			"only non-empty cells overwrite the stored shift.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			summary, err := m.ImportWorkLogs(cmd.Context(), f)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "✅ Imported %d of %d value(s) (%s layout)\n",
				summary.Written, summary.Tuples, summary.Layout)
			return nil
		},
	}
}

func templateCmd() *cobra.Command {
	var monthStr string
	var layoutStr string
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty hours spreadsheet for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := monthFlag(monthStr)
			if err != nil {
				return err
			}

			importCfg := cfg.Import
			if layoutStr != "" {
				importCfg.TemplateLayout = layoutStr
			}
			layout, err := importCfg.Layout()
			if err != nil {
				return err
			}

			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			if output == "" {
				output = report.TemplateFileName(year, month)
			}
			if err := writeFile(output, func(w io.Writer) error {
				return m.Template(w, layout, year, month)
			}); err != nil {
				return err
			}

			logger.Info("Template written",
				zap.String("file", output),
				zap.String("layout", string(layout)))
			printf(cmd.OutOrStdout(), "📄 Template written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "Month as YYYY-MM (default: current month)")
	cmd.Flags().StringVarP(&layoutStr, "layout", "l", "", "Layout: suffixed or dual-sheet (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: calisma-saati-sablonu-<month>.xlsx)")
	return cmd
}

func reportCmd() *cobra.Command {
	var monthStr string
	var shapeStr string
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the monthly overtime report for all employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := monthFlag(monthStr)
			if err != nil {
				return err
			}
			if shapeStr == "" {
				shapeStr = cfg.Report.Shape
			}
			shape, err := report.ParseShape(shapeStr)
			if err != nil {
				return err
			}

			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			r := m.Report(shape, year, month)
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "table", "":
				printReport(out, r)
				return nil
			case "csv":
				if output == "" || output == "-" {
					return report.WriteCSV(out, r)
				}
				if err := writeFile(output, func(w io.Writer) error { return report.WriteCSV(w, r) }); err != nil {
					return err
				}
			case "xlsx":
				if output == "" {
					output = r.FileName("xlsx")
				}
				if err := writeFile(output, func(w io.Writer) error { return report.WriteXLSX(w, r) }); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want table, csv or xlsx)", format)
			}

			logger.Info("Report written",
				zap.String("file", output),
				zap.String("month", r.Month),
				zap.Int("employees", r.Len()))
			printf(out, "📊 Report for %s written to %s\n", r.Month, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "Month as YYYY-MM (default: current month)")
	cmd.Flags().StringVarP(&shapeStr, "shape", "s", "", "Columns: full or reduced (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (csv default: stdout)")
	return cmd
}

func printReport(w io.Writer, r *report.Report) {
	printf(w, "📊 Overtime report %s\n", r.Month)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	if r.Len() == 0 {
		fmt.Fprintln(w, "No employees registered.")
		return
	}

	headers := r.Headers()
	for _, row := range r.Rows() {
		for i, cell := range row {
			switch v := cell.(type) {
			case float64:
				printf(w, "  %-20s %.2f\n", headers[i]+":", v)
			default:
				printf(w, "  %-20s %v\n", headers[i]+":", v)
			}
		}
		fmt.Fprintln(w, "───────────────────────────────────────────────────────")
	}
}

func calendarCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show working days and holidays of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := monthFlag(monthStr)
			if err != nil {
				return err
			}

			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			info := m.MonthInfo(year, month)
			out := cmd.OutOrStdout()
			printf(out, "📅 %s\n", dateutil.FormatMonth(year, month))
			fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
			for _, d := range info.Days {
				marker := "  "
				if !d.IsWorkday {
					marker = "🔸"
				}
				printf(out, "%s %s %-9s %-16s %s\n", marker, dateutil.FormatDate(d.Date), d.Date.Weekday(), d.Type, d.Note)
			}
			fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
			printf(out, "  Working days:   %d  (quota %dh)\n", info.WorkDays, info.WorkDays*overtime.DailyQuotaHours)
			printf(out, "  Weekend days:   %d\n", info.Weekends)
			printf(out, "  Holidays:       %d\n", info.Holidays)
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "Month as YYYY-MM (default: current month)")
	return cmd
}

// writeFile writes through a temp file so a failed export leaves no partial file
func writeFile(path string, write func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
