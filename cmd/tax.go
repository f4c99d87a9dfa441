// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getTaxCmd())
}

func getTaxCmd() *cobra.Command {
	taxCmd := &cobra.Command{
		Use:   "tax",
		Short: "Tax rates by country",
	}

	taxCmd.AddCommand(&cobra.Command{
		Use:   "resolve <country> <order-total>",
		Short: "Resolve the tax owed on an order total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parseDecimal("order total", args[1])
			if err != nil {
				return err
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				res := rt.svc.ResolveTaxDetailed(ctx, args[0], total)
				return emit(map[string]any{
					"country":            res.Country,
					"amount":             res.Amount,
					"rate":               res.Rate,
					"tier":               res.Tier.String(),
					"configured_outcome": res.ConfiguredOutcome.String(),
				}, func(w io.Writer) {
					fmt.Fprintf(w, "tax %s at %s%% (%s)\n", res.Amount, res.Rate, res.Tier)
				})
			})
		},
	})

	var active bool
	setCmd := &cobra.Command{
		Use:   "set <country> <rate>",
		Short: "Create or update a country's tax rate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := parseDecimal("rate", args[1])
			if err != nil {
				return err
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				row, err := rt.svc.SetTaxConfig(ctx, args[0], rate, active)
				if err != nil {
					return err
				}
				return emit(row, func(w io.Writer) {
					fmt.Fprintf(w, "Saved tax rate %s%% for %s (active: %s)\n", row.TaxRate, row.Country, yesNo(row.Active))
				})
			})
		},
	}
	setCmd.Flags().BoolVar(&active, "active", true, "Apply this rate")
	taxCmd.AddCommand(setCmd)

	taxCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured tax rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				taxes, err := rt.store.ListTaxConfigs(ctx)
				if err != nil {
					return fmt.Errorf("failed to list tax configs: %w", err)
				}
				return emit(taxes, func(w io.Writer) {
					rows := make([][]string, 0, len(taxes))
					for _, t := range taxes {
						rows = append(rows, []string{t.Country, t.TaxRate.String(), yesNo(t.Active)})
					}
					table(w, []string{"COUNTRY", "RATE", "ACTIVE"}, rows)
				})
			})
		},
	})

	return taxCmd
}
