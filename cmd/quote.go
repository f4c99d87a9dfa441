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
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/shopconfig/internal/configservice"
)

func init() {
	rootCmd.AddCommand(getQuoteCmd())
}

func getQuoteCmd() *cobra.Command {
	var (
		country  string
		subTotal string
		shipping string
		lines    []string
	)
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price an order: tax, service fee and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildQuoteRequest(country, subTotal, shipping, lines)
			if err != nil {
				return err
			}
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				q := rt.svc.QuoteOrder(ctx, req)
				return emit(q, func(w io.Writer) {
					printQuote(w, q)
				})
			})
		},
	}
	quoteCmd.Flags().StringVar(&country, "country", "", "Shipping country (required)")
	quoteCmd.Flags().StringVar(&subTotal, "subtotal", "0", "Order subtotal, ignored when --line is given")
	quoteCmd.Flags().StringVar(&shipping, "shipping", "0", "Shipping charge, ignored when --line is given")
	quoteCmd.Flags().StringArrayVar(&lines, "line", nil, "Cart line as sku=subtotal[:shipping]; repeatable")
	_ = quoteCmd.MarkFlagRequired("country")

	return quoteCmd
}

func buildQuoteRequest(country, subTotal, shipping string, lines []string) (configservice.QuoteRequest, error) {
	req := configservice.QuoteRequest{Country: country}

	var err error
	if req.SubTotal, err = parseDecimal("subtotal", subTotal); err != nil {
		return req, err
	}
	if req.Shipping, err = parseDecimal("shipping", shipping); err != nil {
		return req, err
	}
	for _, raw := range lines {
		line, err := parseQuoteLine(raw)
		if err != nil {
			return req, err
		}
		req.Lines = append(req.Lines, line)
	}
	return req, nil
}

// parseQuoteLine reads "sku=subtotal" or "sku=subtotal:shipping".
func parseQuoteLine(raw string) (configservice.QuoteLine, error) {
	sku, amounts, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(sku) == "" {
		return configservice.QuoteLine{}, fmt.Errorf("invalid line %q, want sku=subtotal[:shipping]", raw)
	}
	sub, ship, hasShipping := strings.Cut(amounts, ":")

	line := configservice.QuoteLine{SKU: strings.TrimSpace(sku)}
	var err error
	if line.SubTotal, err = parseDecimal("line subtotal", sub); err != nil {
		return configservice.QuoteLine{}, err
	}
	if hasShipping {
		if line.Shipping, err = parseDecimal("line shipping", ship); err != nil {
			return configservice.QuoteLine{}, err
		}
	}
	return line, nil
}

func printQuote(w io.Writer, q configservice.Quote) {
	fmt.Fprintf(w, "Subtotal:     %s\n", q.SubTotal)
	fmt.Fprintf(w, "Shipping:     %s\n", q.Shipping)
	fmt.Fprintf(w, "Tax:          %s (%s, rate %s%%)\n", q.Tax.Amount, q.Tax.Tier, q.Tax.Rate)
	fmt.Fprintf(w, "Service fee:  %s (clamp %s)\n", q.ServiceFee.Fee, q.ServiceFee.Clamp)
	fmt.Fprintf(w, "Total:        %s\n", q.Total)
	if len(q.Lines) > 0 {
		rows := make([][]string, 0, len(q.Lines))
		for _, l := range q.Lines {
			rows = append(rows, []string{l.SKU, l.Tax.String()})
		}
		fmt.Fprintln(w)
		table(w, []string{"SKU", "TAX"}, rows)
	}
}
