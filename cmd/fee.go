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

	"github.com/cardinalhq/shopconfig/configdb"
)

func init() {
	rootCmd.AddCommand(getFeeCmd())
}

func getFeeCmd() *cobra.Command {
	feeCmd := &cobra.Command{
		Use:   "fee",
		Short: "Service fee policies",
	}

	feeCmd.AddCommand(&cobra.Command{
		Use:   "calc <order-total>",
		Short: "Calculate the service fee for an order total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parseDecimal("order total", args[0])
			if err != nil {
				return err
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				res := rt.svc.ResolveServiceFee(ctx, total)
				return emit(map[string]any{
					"fee":     res.Fee,
					"clamp":   res.Clamp.String(),
					"policy":  res.Policy,
					"outcome": res.Outcome.String(),
				}, func(w io.Writer) {
					policy := res.Policy
					if policy == "" {
						policy = "-"
					}
					fmt.Fprintf(w, "fee %s (policy %s, clamp %s, %s)\n", res.Fee, policy, res.Clamp, res.Outcome)
				})
			})
		},
	})

	var (
		percentage string
		minFee     string
		maxFee     string
		active     bool
	)
	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a fee policy; an active policy deactivates the others",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := parseDecimal("percentage", percentage)
			if err != nil {
				return err
			}
			minimum, err := parseDecimal("min fee", minFee)
			if err != nil {
				return err
			}
			maximum, err := optionalDecimal("max fee", maxFee)
			if err != nil {
				return err
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				row, err := rt.svc.SetServiceFeeConfig(ctx, configdb.UpsertServiceFeeConfigParams{
					Name:          args[0],
					FeePercentage: pct,
					MinFee:        minimum,
					MaxFee:        maximum,
					Active:        active,
				})
				if err != nil {
					return err
				}
				return emit(row, func(w io.Writer) {
					fmt.Fprintf(w, "Saved service fee policy %s (active: %s)\n", row.Name, yesNo(row.Active))
				})
			})
		},
	}
	setCmd.Flags().StringVar(&percentage, "percentage", "", "Fee percentage of the order total, 0-100 (required)")
	setCmd.Flags().StringVar(&minFee, "min", "0", "Minimum fee")
	setCmd.Flags().StringVar(&maxFee, "max", "", "Maximum fee (empty for no ceiling)")
	setCmd.Flags().BoolVar(&active, "active", true, "Make this the active policy")
	_ = setCmd.MarkFlagRequired("percentage")
	feeCmd.AddCommand(setCmd)

	feeCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List fee policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				fees, err := rt.store.ListServiceFeeConfigs(ctx)
				if err != nil {
					return fmt.Errorf("failed to list service fee configs: %w", err)
				}
				return emit(fees, func(w io.Writer) {
					rows := make([][]string, 0, len(fees))
					for _, f := range fees {
						maximum := "-"
						if f.MaxFee != nil {
							maximum = f.MaxFee.String()
						}
						rows = append(rows, []string{f.Name, f.FeePercentage.String(), f.MinFee.String(), maximum, yesNo(f.Active)})
					}
					table(w, []string{"NAME", "PERCENT", "MIN", "MAX", "ACTIVE"}, rows)
				})
			})
		},
	})

	return feeCmd
}
