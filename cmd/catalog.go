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
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/shopconfig/configdb"
)

func init() {
	rootCmd.AddCommand(getShippingCmd())
	rootCmd.AddCommand(getGatewayCmd())
}

func getShippingCmd() *cobra.Command {
	shippingCmd := &cobra.Command{
		Use:   "shipping",
		Short: "Shipping services",
	}

	var enabledOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List shipping services by priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				services, err := rt.svc.ListShippingServices(ctx, enabledOnly)
				if err != nil {
					return err
				}
				return emit(services, func(w io.Writer) {
					rows := make([][]string, 0, len(services))
					for _, s := range services {
						rows = append(rows, []string{
							s.Name,
							s.BaseRate.String(),
							strconv.Itoa(int(s.EstimatedDays)),
							strconv.Itoa(int(s.Priority)),
							yesNo(s.Enabled),
						})
					}
					table(w, []string{"NAME", "BASE_RATE", "DAYS", "PRIORITY", "ENABLED"}, rows)
				})
			})
		},
	}
	listCmd.Flags().BoolVar(&enabledOnly, "enabled-only", false, "Only enabled services")
	shippingCmd.AddCommand(listCmd)

	var (
		params   configdb.UpsertShippingServiceParams
		baseRate string
	)
	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a shipping service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := parseDecimal("base rate", baseRate)
			if err != nil {
				return err
			}
			params.Name = args[0]
			params.BaseRate = rate
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				row, err := rt.svc.SetShippingService(ctx, params)
				if err != nil {
					return err
				}
				return emit(row, func(w io.Writer) {
					fmt.Fprintf(w, "Saved shipping service %s\n", row.Name)
				})
			})
		},
	}
	setCmd.Flags().StringVar(&baseRate, "base-rate", "0", "Base rate")
	setCmd.Flags().StringVar(&params.Description, "description", "", "Description")
	setCmd.Flags().Int32Var(&params.EstimatedDays, "days", 0, "Estimated delivery days")
	setCmd.Flags().Int32Var(&params.Priority, "priority", 0, "Sort order, lowest first")
	setCmd.Flags().BoolVar(&params.Enabled, "enabled", true, "Offer this service")
	shippingCmd.AddCommand(setCmd)

	return shippingCmd
}

func getGatewayCmd() *cobra.Command {
	gatewayCmd := &cobra.Command{
		Use:   "gateway",
		Short: "Payment gateways",
	}

	var activeOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List payment gateways by priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				gateways, err := rt.svc.ListPaymentGateways(ctx, activeOnly)
				if err != nil {
					return err
				}
				return emit(gateways, func(w io.Writer) {
					rows := make([][]string, 0, len(gateways))
					for _, g := range gateways {
						rows = append(rows, []string{
							g.Code,
							g.Name,
							strconv.Itoa(int(g.Priority)),
							yesNo(g.Active),
							yesNo(g.Sandbox),
						})
					}
					table(w, []string{"CODE", "NAME", "PRIORITY", "ACTIVE", "SANDBOX"}, rows)
				})
			})
		},
	}
	listCmd.Flags().BoolVar(&activeOnly, "active-only", false, "Only active gateways")
	gatewayCmd.AddCommand(listCmd)

	gatewayCmd.AddCommand(&cobra.Command{
		Use:   "enabled <code>",
		Short: "Report whether a gateway is active; exits non-zero when it is not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				enabled := rt.svc.IsPaymentGatewayEnabled(ctx, args[0])
				if err := emit(map[string]any{"code": args[0], "enabled": enabled}, func(w io.Writer) {
					fmt.Fprintf(w, "%s: %s\n", args[0], onOff(enabled))
				}); err != nil {
					return err
				}
				if !enabled {
					return fmt.Errorf("payment gateway %s is not enabled", args[0])
				}
				return nil
			})
		},
	})

	var (
		params          configdb.UpsertPaymentGatewayParams
		credentialsFile string
	)
	setCmd := &cobra.Command{
		Use:   "set <code>",
		Short: "Create or update a payment gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Code = args[0]
			if credentialsFile != "" {
				creds, err := os.ReadFile(credentialsFile)
				if err != nil {
					return fmt.Errorf("failed to read credentials: %w", err)
				}
				params.Credentials = creds
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				row, err := rt.svc.SetPaymentGateway(ctx, params)
				if err != nil {
					return err
				}
				return emit(row, func(w io.Writer) {
					fmt.Fprintf(w, "Saved payment gateway %s (active: %s, sandbox: %s)\n", row.Code, yesNo(row.Active), yesNo(row.Sandbox))
				})
			})
		},
	}
	setCmd.Flags().StringVar(&params.Name, "name", "", "Display name (required)")
	setCmd.Flags().Int32Var(&params.Priority, "priority", 0, "Sort order, lowest first")
	setCmd.Flags().BoolVar(&params.Active, "active", false, "Accept payments through this gateway")
	setCmd.Flags().BoolVar(&params.Sandbox, "sandbox", true, "Use the gateway's test environment")
	setCmd.Flags().StringVar(&credentialsFile, "credentials-file", "", "JSON object file with the gateway credentials")
	_ = setCmd.MarkFlagRequired("name")
	gatewayCmd.AddCommand(setCmd)

	return gatewayCmd
}
