package fidelity

import (
	"go.uber.org/zap"

	"github.com/quanterra/fideligo/pkg/money"
)

// Quote is a point-in-time market data snapshot for a stock or ETF.
type Quote struct {
	Symbol        string
	Name          string
	LastPrice     money.Amount
	DollarChange  money.Amount
	PercentChange money.Amount
	Bid           money.Amount
	BidSize       int64
	Ask           money.Amount
	AskSize       int64
	Volume        int64
}

func (q Quote) Fields() []zap.Field {
	return []zap.Field{
		zap.String("symbol", q.Symbol),
		zap.String("name", q.Name),
		zap.String("last_price", q.LastPrice.String()),
		zap.String("dollar_change", q.DollarChange.String()),
		zap.String("percent_change", q.PercentChange.String()),
		zap.String("bid", q.Bid.String()),
		zap.Int64("bid_size", q.BidSize),
		zap.String("ask", q.Ask.String()),
		zap.Int64("ask_size", q.AskSize),
		zap.Int64("volume", q.Volume),
	}
}
