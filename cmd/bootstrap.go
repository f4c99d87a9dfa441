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

	"github.com/cardinalhq/shopconfig/internal/bootstrap"
)

func init() {
	rootCmd.AddCommand(getBootstrapCmd())
}

func getBootstrapCmd() *cobra.Command {
	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Seed configdb from a file",
	}

	bootstrapCmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML bootstrap file in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				summary, err := bootstrap.ImportFromYAML(ctx, args[0], rt.store)
				if err != nil {
					return err
				}
				rt.svc.InvalidateAll(ctx)
				return emit(summary, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d flags, %d fee policies, %d taxes, %d currencies, %d shipping services, %d gateways\n",
						summary.FeatureFlags, summary.ServiceFees, summary.Taxes, summary.Currencies,
						summary.ShippingServices, summary.PaymentGateways)
					if summary.DefaultCurrency != "" {
						fmt.Fprintf(w, "Default currency: %s\n", summary.DefaultCurrency)
					}
				})
			})
		},
	})

	return bootstrapCmd
}
