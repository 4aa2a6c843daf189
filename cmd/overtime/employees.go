package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/overtime-tracker/internal/employee"
)

func employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}
	cmd.AddCommand(
		employeeAddCmd(),
		employeeBulkCmd(),
		employeeImportCmd(),
		employeeRemoveCmd(),
		employeeListCmd(),
	)
	return cmd
}

func employeeAddCmd() *cobra.Command {
	var number string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a single employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			emp, err := m.AddEmployee(cmd.Context(), args[0], number)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "✅ Added %s (%s)\n", emp.Name, emp.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&number, "number", "n", "", "Employee number")
	return cmd
}

func employeeBulkCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: `Add employees from "name, number" lines (file or stdin)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", file, err)
				}
				defer f.Close()
				r = f
			}
			text, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("failed to read employee list: %w", err)
			}

			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			added, err := m.AddEmployeesBulk(cmd.Context(), string(text))
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "✅ Added %d employee(s)\n", len(added))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read lines from file instead of stdin")
	return cmd
}

func employeeImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Add employees listed in a spreadsheet",
		Args:  cobra.ExactArgs(1),
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

			added, err := m.ImportEmployees(cmd.Context(), f)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "✅ Imported %d employee(s)\n", len(added))
			return nil
		},
	}
}

func employeeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove EMPLOYEE",
		Short: "Remove an employee and all of their logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			emp, err := m.FindEmployee(args[0])
			if err != nil {
				return err
			}
			if err := m.RemoveEmployee(cmd.Context(), emp.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "🗑  Removed %s\n", emp.Name)
			return nil
		},
	}
}

func employeeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := initializeManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			printEmployees(cmd.OutOrStdout(), m.Employees())
			return nil
		},
	}
}

func printEmployees(w io.Writer, employees []employee.Employee) {
	if len(employees) == 0 {
		fmt.Fprintln(w, "No employees registered.")
		return
	}

	printf(w, "%-36s  %-10s  %s\n", "ID", "NUMBER", "NAME")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	for _, e := range employees {
		number := e.EmployeeNumber
		if number == "" {
			number = "-"
		}
		printf(w, "%-36s  %-10s  %s\n", e.ID, number, e.Name)
	}
}
