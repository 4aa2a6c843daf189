package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/username/overtime-tracker/internal/overtime"
)

func holidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage extra non-working dates",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add DATE...",
			Short: "Mark dates as non-working",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := initializeManager(cmd.Context())
				if err != nil {
					return err
				}
				defer m.Close()

				for _, date := range args {
					if err := m.AddHoliday(cmd.Context(), date); err != nil {
						return err
					}
				}
				printf(cmd.OutOrStdout(), "✅ %d holiday(s) configured\n", len(m.Holidays()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove DATE...",
			Short: "Make dates working again",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := initializeManager(cmd.Context())
				if err != nil {
					return err
				}
				defer m.Close()

				for _, date := range args {
					if err := m.RemoveHoliday(cmd.Context(), date); err != nil {
						return err
					}
				}
				printf(cmd.OutOrStdout(), "✅ %d holiday(s) configured\n", len(m.Holidays()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List configured non-working dates",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := initializeManager(cmd.Context())
				if err != nil {
					return err
				}
				defer m.Close()

				out := cmd.OutOrStdout()
				if len(m.Holidays()) == 0 {
					fmt.Fprintln(out, "No extra holidays configured.")
					return nil
				}
				for _, d := range m.Holidays() {
					fmt.Fprintln(out, d)
				}
				return nil
			},
		},
	)
	return cmd
}

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show or change overtime rates",
	}

	var day, evening float64
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change the day and/or evening overtime rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("day") && !cmd.Flags().Changed("evening") {
				return fmt.Errorf("at least one of --day or --evening must be specified")
			}

			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			rates := m.Rates()
			if cmd.Flags().Changed("day") {
				rates.DayOvertimeRate = day
			}
			if cmd.Flags().Changed("evening") {
				rates.EveningOvertimeRate = evening
			}
			if err := m.SetRates(cmd.Context(), rates); err != nil {
				return err
			}
			printRates(cmd, rates)
			return nil
		},
	}
	setCmd.Flags().Float64Var(&day, "day", 0, "Pay per extra weekday day-shift hour")
	setCmd.Flags().Float64Var(&evening, "evening", 0, "Pay per evening or weekend hour")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the overtime rates",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := initializeManager(cmd.Context())
				if err != nil {
					return err
				}
				defer m.Close()

				printRates(cmd, m.Rates())
				return nil
			},
		},
		setCmd,
	)
	return cmd
}

func printRates(cmd *cobra.Command, rates overtime.Rates) {
	out := cmd.OutOrStdout()
	printf(out, "  Day overtime rate:      %.2f\n", rates.DayOvertimeRate)
	printf(out, "  Evening overtime rate:  %.2f\n", rates.EveningOvertimeRate)
}
