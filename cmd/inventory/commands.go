package main

import (
	"fmt"
	"strconv"

	"github.com/rogerio-castellano/inventory-store/internal/report"
	"github.com/rogerio-castellano/inventory-store/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) runDemo(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	s := store.Open(ctx, a.repo, a.logger)

	_ = s.Add("apple", 10)
	_ = s.Add("banana", 2)
	_ = s.Add("", -10) // rejected: exercises validation
	_ = s.Remove("apple", 3)
	_ = s.Remove("orange", 1)

	fmt.Fprintf(out, "Apple stock: %d\n", s.Quantity("apple"))
	fmt.Fprintf(out, "Low items: %v\n", s.LowStock(a.cfg.LowStockThreshold))

	if err := report.Write(out, s.Inventory(), report.FormatText); err != nil {
		a.logger.Error("Could not print report", zap.Error(err))
	}
	_ = s.Save(ctx, a.repo)

	fmt.Fprintln(out, "Program finished.")
	return nil
}

// parseQuantity validates a quantity argument at the CLI boundary.
func (a *app) parseQuantity(item, raw string) (int, bool) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		a.logger.Error("Invalid quantity", zap.String("item", item), zap.String("qty", raw))
		return 0, false
	}
	return qty, true
}

func (a *app) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <item> <qty>",
		Short: "Add qty units of item (a negative qty lowers the stock)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, ok := a.parseQuantity(args[0], args[1])
			if !ok {
				return nil
			}

			s := store.Open(cmd.Context(), a.repo, a.logger)
			if s.Add(args[0], qty) != nil {
				return nil
			}
			_ = s.Save(cmd.Context(), a.repo)
			return nil
		},
	}
	// Everything after <item> is positional, so negative quantities are not read as flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <item> <qty>",
		Short: "Remove qty units of item, dropping it once none are left",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, ok := a.parseQuantity(args[0], args[1])
			if !ok {
				return nil
			}

			s := store.Open(cmd.Context(), a.repo, a.logger)
			if s.Remove(args[0], qty) != nil {
				return nil
			}
			_ = s.Save(cmd.Context(), a.repo)
			return nil
		},
	}
	// Everything after <item> is positional, so negative quantities are not read as flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <item>",
		Short: "Print the stored quantity of item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.Open(cmd.Context(), a.repo, a.logger)
			fmt.Fprintf(cmd.OutOrStdout(), "%s stock: %d\n", args[0], s.Quantity(args[0]))
			return nil
		},
	}
}

func (a *app) lowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items below the low-stock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.Open(cmd.Context(), a.repo, a.logger)
			fmt.Fprintf(cmd.OutOrStdout(), "Low items: %v\n", s.LowStock(a.cfg.LowStockThreshold))
			return nil
		},
	}
	cmd.Flags().Int("threshold", store.DefaultLowStockThreshold, "low-stock threshold")
	_ = a.v.BindPFlag("inventory.low_stock_threshold", cmd.Flags().Lookup("threshold"))
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every item and its quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			s := store.Open(cmd.Context(), a.repo, a.logger)
			return report.Write(cmd.OutOrStdout(), s.Inventory(), f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "output format: text, json or yaml")
	return cmd
}
