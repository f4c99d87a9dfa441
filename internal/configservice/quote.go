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

package configservice

import (
	"context"

	"github.com/shopspring/decimal"
)

// QuoteLine is one cart line.
type QuoteLine struct {
	SKU      string
	SubTotal decimal.Decimal
	Shipping decimal.Decimal
}

// QuoteRequest prices an order shipped to Country. When Lines is set,
// SubTotal and Shipping are summed from it.
type QuoteRequest struct {
	Country  string
	SubTotal decimal.Decimal
	Shipping decimal.Decimal
	Lines    []QuoteLine
}

// LineQuote is the tax attributed to one cart line.
type LineQuote struct {
	SKU string
	Tax decimal.Decimal
}

// Quote is a priced order. Total includes the service fee.
type Quote struct {
	SubTotal   decimal.Decimal
	Shipping   decimal.Decimal
	Tax        TaxResolution
	ServiceFee FeeResolution
	Total      decimal.Decimal
	Lines      []LineQuote
}

// QuoteOrder prices an order the way checkout does: tax on the subtotal,
// total = subtotal + shipping + tax, then the service fee computed on that
// total and added to it. It never fails.
func (s *Service) QuoteOrder(ctx context.Context, req QuoteRequest) Quote {
	subTotal, shipping := req.SubTotal, req.Shipping
	if len(req.Lines) > 0 {
		subTotal, shipping = decimal.Zero, decimal.Zero
		for _, line := range req.Lines {
			subTotal = subTotal.Add(line.SubTotal)
			shipping = shipping.Add(line.Shipping)
		}
	}

	q := Quote{
		SubTotal: subTotal,
		Shipping: shipping,
		Tax:      s.ResolveTaxDetailed(ctx, req.Country, subTotal),
	}
	for _, line := range req.Lines {
		q.Lines = append(q.Lines, LineQuote{
			SKU: line.SKU,
			Tax: s.ResolveTax(ctx, req.Country, line.SubTotal),
		})
	}

	beforeFee := subTotal.Add(shipping).Add(q.Tax.Amount)
	q.ServiceFee = s.ResolveServiceFee(ctx, beforeFee)
	q.Total = beforeFee.Add(q.ServiceFee.Fee)
	return q
}
