package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/overtime-tracker/internal/manager"
	"github.com/username/overtime-tracker/internal/worklog"
	"github.com/username/overtime-tracker/pkg/dateutil"
)

func logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record or show daily hours",
	}
	cmd.AddCommand(logSetCmd(), logShowCmd())
	return cmd
}

func logSetCmd() *cobra.Command {
	var shiftName string
	var reason string

	cmd := &cobra.Command{
		Use:   "set EMPLOYEE DATE HOURS",
		Short: "Set one shift's hours for an employee and date",
		Long: "Set one shift's hours. Sunday hours need a justification: pass --reason, " +
			"or type it when asked. An empty answer cancels the edit.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			shift, err := worklog.ParseShift(shiftName)
			if err != nil {
				return err
			}

			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			out := cmd.OutOrStdout()
			outcome, err := m.ProposeLog(cmd.Context(), args[0], args[1], shift, args[2])
			if err != nil {
				return err
			}

			if outcome == worklog.NeedsJustification {
				if reason == "" {
					reason = promptReason(cmd.InOrStdin(), out, args[1])
				}
				if err := submitOrCancel(cmd, m, reason); err != nil {
					return err
				}
			}

			emp, _ := m.FindEmployee(args[0])
			log := m.Log(emp.ID, mustDate(args[1]))
			printf(out, "✅ %s %s: day %.2fh, evening %.2fh", emp.Name, mustDate(args[1]), log.DayHours, log.EveningHours)
			if log.Justification != "" {
				printf(out, " (%s)", log.Justification)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&shiftName, "shift", "s", string(worklog.ShiftDay), "Shift: day or evening")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Justification for Sunday hours")
	return cmd
}

func submitOrCancel(cmd *cobra.Command, m *manager.Manager, reason string) error {
	err := m.SubmitJustification(cmd.Context(), reason)
	if errors.Is(err, worklog.ErrEmptyJustification) {
		p, _ := m.CancelJustification()
		return fmt.Errorf("edit of %s cancelled: %w", p.Date, worklog.ErrJustificationRequired)
	}
	return err
}

func promptReason(in io.Reader, out io.Writer, date string) string {
	printf(out, "⚠️  %s is a Sunday. Why was this work needed? ", date)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line)
}

// mustDate normalizes a date already accepted by the manager
func mustDate(value string) string {
	d, err := dateutil.ParseDate(value)
	if err != nil {
		return value
	}
	return dateutil.FormatDate(d)
}

func logShowCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "show EMPLOYEE",
		Short: "Show an employee's logs and overtime for a month",
		Args:  cobra.ExactArgs(1),
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

			emp, err := m.FindEmployee(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "📅 %s, %s\n", emp.Name, dateutil.FormatMonth(year, month))
			fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
			for _, e := range m.MonthLogs(emp.ID, year, month) {
				if !e.HasHours() && e.Justification == "" {
					continue
				}
				d, _ := dateutil.ParseDate(e.Date)
				printf(out, "  %s %-9s  day %6.2fh  evening %6.2fh  %s\n",
					e.Date, d.Weekday(), e.DayHours, e.EveningHours, e.Justification)
			}

			res := m.Compute(emp.ID, year, month)
			fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
			printf(out, "  Working days:        %d  (expected %.1fh)\n", res.WorkingDays, res.ExpectedHours)
			printf(out, "  Weekday day hours:   %.2fh  (extra %.2fh)\n", res.WeekdayDayHours, res.ExtraWeekdayDayHours)
			printf(out, "  Weekday evenings:    %.2fh\n", res.WeekdayEveningHours)
			printf(out, "  Saturday:            %.2fh day, %.2fh evening\n", res.SaturdayDayHours, res.SaturdayEveningHours)
			printf(out, "  Sunday:              %.2fh day, %.2fh evening\n", res.SundayDayHours, res.SundayEveningHours)
			printf(out, "  Total overtime:      %.2fh\n", res.TotalOvertimeHours)
			printf(out, "  Total payment:       %.2f\n", res.TotalPayment)
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "Month as YYYY-MM (default: current month)")
	return cmd
}
