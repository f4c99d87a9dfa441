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
	"github.com/cardinalhq/shopconfig/internal/configservice"
)

func init() {
	rootCmd.AddCommand(getCurrencyCmd())
}

func getCurrencyCmd() *cobra.Command {
	currencyCmd := &cobra.Command{
		Use:   "currency",
		Short: "Currencies and the default currency",
	}

	currencyCmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Show the default currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				def, err := rt.svc.GetDefaultCurrency(ctx)
				if err != nil {
					return err
				}
				return emit(def, func(w io.Writer) {
					fmt.Fprintf(w, "%s (%s %s)\n", def.Code, def.Symbol, def.Name)
				})
			})
		},
	})

	currencyCmd.AddCommand(&cobra.Command{
		Use:   "set-default <code>",
		Short: "Make a currency the single default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				if err := rt.svc.SetDefaultCurrency(ctx, args[0]); err != nil {
					return err
				}
				def, err := rt.svc.GetDefaultCurrency(ctx)
				if err != nil {
					return err
				}
				return emit(def, func(w io.Writer) {
					fmt.Fprintf(w, "Default currency is now %s\n", def.Code)
				})
			})
		},
	})

	var (
		symbol    string
		name      string
		rate      string
		active    bool
		isDefault bool
	)
	upsertCmd := &cobra.Command{
		Use:   "upsert <code>",
		Short: "Create or update a currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exchangeRate, err := parseDecimal("rate", rate)
			if err != nil {
				return err
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				row, err := rt.svc.UpsertCurrency(ctx, configservice.CurrencyInput{
					Code:         args[0],
					Symbol:       symbol,
					Name:         name,
					ExchangeRate: exchangeRate,
					Active:       active,
					IsDefault:    isDefault,
				})
				if err != nil {
					return err
				}
				return emit(row, func(w io.Writer) {
					fmt.Fprintf(w, "Saved currency %s (default: %s)\n", row.Code, yesNo(row.IsDefault))
				})
			})
		},
	}
	upsertCmd.Flags().StringVar(&symbol, "symbol", "", "Display symbol")
	upsertCmd.Flags().StringVar(&name, "name", "", "Display name")
	upsertCmd.Flags().StringVar(&rate, "rate", "1", "Units of this currency per unit of the default currency")
	upsertCmd.Flags().BoolVar(&active, "active", true, "Offer this currency")
	upsertCmd.Flags().BoolVar(&isDefault, "default", false, "Also make this the default currency")
	currencyCmd.AddCommand(upsertCmd)

	currencyCmd.AddCommand(&cobra.Command{
		Use:   "convert <amount> <code>",
		Short: "Convert an amount in the default currency into another currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseDecimal("amount", args[0])
			if err != nil {
				return err
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				converted, err := rt.svc.ConvertAmount(ctx, amount, args[1])
				if err != nil {
					return err
				}
				return emit(map[string]any{"amount": converted, "currency": args[1]}, func(w io.Writer) {
					fmt.Fprintln(w, converted.String())
				})
			})
		},
	})

	currencyCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				currencies, err := rt.svc.ListCurrencies(ctx)
				if err != nil {
					return err
				}
				return emit(currencies, func(w io.Writer) {
					printCurrencies(w, currencies)
				})
			})
		},
	})

	return currencyCmd
}

func printCurrencies(w io.Writer, currencies []configdb.CurrencyConfig) {
	rows := make([][]string, 0, len(currencies))
	for _, c := range currencies {
		def := ""
		if c.IsDefault {
			def = "*"
		}
		rows = append(rows, []string{c.Code, c.Symbol, c.Name, c.ExchangeRate.String(), yesNo(c.Active), def})
	}
	table(w, []string{"CODE", "SYMBOL", "NAME", "RATE", "ACTIVE", "DEFAULT"}, rows)
}
