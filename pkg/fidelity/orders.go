package fidelity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quanterra/fideligo/pkg/money"
)

// DefaultLimitBuffer is the marketable limit order price buffer in cents.
const DefaultLimitBuffer = 10

// MarketOrder places a market order for a stock or ETF. The returned
// bool reports whether the order was placed, a decline at either
// confirmation gate abandons the order without an error.
func (d *Driver) MarketOrder(ctx context.Context, account, symbol string, action Action, unit Unit, quantity string) (bool, error) {
	if err := action.validate(); err != nil {
		return false, err
	}
	if err := unit.validate(); err != nil {
		return false, err
	}

	logger := d.orderLogger("market", account, symbol,
		zap.Stringer("action", action),
		zap.Stringer("unit", unit),
		zap.String("quantity", quantity))

	placed, err := d.marketOrder(ctx, logger, account, symbol, action, unit, quantity)
	if err != nil {
		logger.Error("market order failed", zap.Error(err))
		return false, err
	}
	return placed, nil
}

func (d *Driver) marketOrder(ctx context.Context, logger *zap.Logger, account, symbol string, action Action, unit Unit, quantity string) (bool, error) {
	if err := d.gotoStockTicket(ctx, account); err != nil {
		return false, err
	}
	if err := d.setSymbol(ctx, selSymbolInput, symbol); err != nil {
		return false, err
	}
	if err := d.setAction(ctx, action); err != nil {
		return false, err
	}
	if err := d.setUnit(ctx, unit); err != nil {
		return false, err
	}
	if err := d.setStockQuantity(ctx, quantity); err != nil {
		return false, err
	}
	if err := d.setMarket(ctx); err != nil {
		return false, err
	}
	return d.placeOrder(ctx, logger)
}

// LimitOrder places a day limit order for a stock or ETF.
func (d *Driver) LimitOrder(ctx context.Context, account, symbol string, action Action, unit Unit, quantity, limit string) (bool, error) {
	if err := action.validate(); err != nil {
		return false, err
	}
	if err := unit.validate(); err != nil {
		return false, err
	}

	logger := d.orderLogger("limit", account, symbol,
		zap.Stringer("action", action),
		zap.Stringer("unit", unit),
		zap.String("quantity", quantity),
		zap.String("limit", limit))

	placed, err := d.limitOrder(ctx, logger, account, symbol, action, unit, quantity, limit)
	if err != nil {
		logger.Error("limit order failed", zap.Error(err))
		return false, err
	}
	return placed, nil
}

func (d *Driver) limitOrder(ctx context.Context, logger *zap.Logger, account, symbol string, action Action, unit Unit, quantity, limit string) (bool, error) {
	if err := d.gotoStockTicket(ctx, account); err != nil {
		return false, err
	}
	if err := d.setSymbol(ctx, selSymbolInput, symbol); err != nil {
		return false, err
	}
	if err := d.setAction(ctx, action); err != nil {
		return false, err
	}
	if err := d.setUnit(ctx, unit); err != nil {
		return false, err
	}
	if err := d.setStockQuantity(ctx, quantity); err != nil {
		return false, err
	}
	if err := d.setLimit(ctx, limit); err != nil {
		return false, err
	}
	return d.placeOrder(ctx, logger)
}

// MarketableLimitOrder places a limit order priced to fill immediately:
// ask plus buffer when buying, bid minus buffer when selling. The buffer
// is in cents and must be nonnegative.
func (d *Driver) MarketableLimitOrder(ctx context.Context, account, symbol string, action Action, unit Unit, quantity string, buffer int64) (bool, error) {
	if err := action.validate(); err != nil {
		return false, err
	}
	if err := unit.validate(); err != nil {
		return false, err
	}
	if buffer < 0 {
		return false, errors.New("buffer must be nonnegative")
	}

	logger := d.orderLogger("marketable_limit", account, symbol,
		zap.Stringer("action", action),
		zap.Stringer("unit", unit),
		zap.String("quantity", quantity),
		zap.Int64("buffer", buffer))

	placed, err := d.marketableLimitOrder(ctx, logger, account, symbol, action, unit, quantity, buffer)
	if err != nil {
		logger.Error("marketable limit order failed", zap.Error(err))
		return false, err
	}
	return placed, nil
}

func (d *Driver) marketableLimitOrder(ctx context.Context, logger *zap.Logger, account, symbol string, action Action, unit Unit, quantity string, buffer int64) (bool, error) {
	if err := d.gotoStockTicket(ctx, account); err != nil {
		return false, err
	}
	if err := d.setSymbol(ctx, selSymbolInput, symbol); err != nil {
		return false, err
	}
	if err := d.setAction(ctx, action); err != nil {
		return false, err
	}
	if err := d.setUnit(ctx, unit); err != nil {
		return false, err
	}
	if err := d.setStockQuantity(ctx, quantity); err != nil {
		return false, err
	}

	bid, ask, err := d.bidAskCents(ctx)
	if err != nil {
		return false, err
	}
	limit := ask + buffer
	if action == ActionSell {
		limit = bid - buffer
	}
	logger.Info("marketable limit price",
		zap.String("bid", money.FromCents(bid).String()),
		zap.String("ask", money.FromCents(ask).String()),
		zap.String("limit", money.FromCents(limit).String()))

	if err := d.setLimit(ctx, money.FromCents(limit).String()); err != nil {
		return false, err
	}
	return d.placeOrder(ctx, logger)
}

// GTCOrder places a good-til-canceled limit order for a stock or ETF.
// GTC orders are always denominated in shares.
func (d *Driver) GTCOrder(ctx context.Context, account, symbol string, action Action, shares, limit string) (bool, error) {
	if err := action.validate(); err != nil {
		return false, err
	}

	logger := d.orderLogger("gtc", account, symbol,
		zap.Stringer("action", action),
		zap.String("shares", shares),
		zap.String("limit", limit))

	placed, err := d.gtcOrder(ctx, logger, account, symbol, action, shares, limit)
	if err != nil {
		logger.Error("good-til-canceled order failed", zap.Error(err))
		return false, err
	}
	return placed, nil
}

func (d *Driver) gtcOrder(ctx context.Context, logger *zap.Logger, account, symbol string, action Action, shares, limit string) (bool, error) {
	if err := d.gotoStockTicket(ctx, account); err != nil {
		return false, err
	}
	if err := d.setSymbol(ctx, selSymbolInput, symbol); err != nil {
		return false, err
	}
	if err := d.setAction(ctx, action); err != nil {
		return false, err
	}
	if err := d.setUnit(ctx, UnitShares); err != nil {
		return false, err
	}
	if err := d.setStockQuantity(ctx, shares); err != nil {
		return false, err
	}
	if err := d.setLimit(ctx, limit); err != nil {
		return false, err
	}
	if err := d.setGTC(ctx); err != nil {
		return false, err
	}
	return d.placeOrder(ctx, logger)
}

// BuyMutualFund places a buy order for a mutual fund, denominated in
// dollars.
func (d *Driver) BuyMutualFund(ctx context.Context, account, symbol, dollars string) (bool, error) {
	logger := d.orderLogger("fund_buy", account, symbol,
		zap.String("dollars", dollars))

	placed, err := d.buyMutualFund(ctx, logger, account, symbol, dollars)
	if err != nil {
		logger.Error("mutual fund buy order failed", zap.Error(err))
		return false, err
	}
	return placed, nil
}

func (d *Driver) buyMutualFund(ctx context.Context, logger *zap.Logger, account, symbol, dollars string) (bool, error) {
	if err := d.gotoFundTicket(ctx, account); err != nil {
		return false, err
	}
	if err := d.setFundSymbol(ctx, symbol); err != nil {
		return false, err
	}
	if err := d.setFundAction(ctx, "Buy"); err != nil {
		return false, err
	}
	if err := d.setFundQuantity(ctx, dollars); err != nil {
		return false, err
	}
	return d.placeOrder(ctx, logger)
}

// SellMutualFund places a sell order for a mutual fund.
func (d *Driver) SellMutualFund(ctx context.Context, account, symbol string, unit Unit, quantity string) (bool, error) {
	if err := unit.validate(); err != nil {
		return false, err
	}

	logger := d.orderLogger("fund_sell", account, symbol,
		zap.Stringer("unit", unit),
		zap.String("quantity", quantity))

	placed, err := d.sellMutualFund(ctx, logger, account, symbol, unit, quantity)
	if err != nil {
		logger.Error("mutual fund sell order failed", zap.Error(err))
		return false, err
	}
	return placed, nil
}

func (d *Driver) sellMutualFund(ctx context.Context, logger *zap.Logger, account, symbol string, unit Unit, quantity string) (bool, error) {
	if err := d.gotoFundTicket(ctx, account); err != nil {
		return false, err
	}
	if err := d.setFundSymbol(ctx, symbol); err != nil {
		return false, err
	}
	if err := d.setFundAction(ctx, "Sell"); err != nil {
		return false, err
	}
	if err := d.setUnit(ctx, unit); err != nil {
		return false, err
	}
	if err := d.setFundQuantity(ctx, quantity); err != nil {
		return false, err
	}
	return d.placeOrder(ctx, logger)
}

// ExchangeMutualFund sells one mutual fund and buys another in a single
// exchange order.
func (d *Driver) ExchangeMutualFund(ctx context.Context, account, sellSymbol string, unit Unit, quantity, buySymbol string) (bool, error) {
	if err := unit.validate(); err != nil {
		return false, err
	}

	logger := d.orderLogger("fund_exchange", account, sellSymbol,
		zap.Stringer("unit", unit),
		zap.String("quantity", quantity),
		zap.String("buy_symbol", buySymbol))

	placed, err := d.exchangeMutualFund(ctx, logger, account, sellSymbol, unit, quantity, buySymbol)
	if err != nil {
		logger.Error("mutual fund exchange order failed", zap.Error(err))
		return false, err
	}
	return placed, nil
}

func (d *Driver) exchangeMutualFund(ctx context.Context, logger *zap.Logger, account, sellSymbol string, unit Unit, quantity, buySymbol string) (bool, error) {
	if err := d.gotoFundTicket(ctx, account); err != nil {
		return false, err
	}
	if err := d.setFundSymbol(ctx, sellSymbol); err != nil {
		return false, err
	}
	if err := d.setFundAction(ctx, "Exchange"); err != nil {
		return false, err
	}
	if err := d.setUnit(ctx, unit); err != nil {
		return false, err
	}
	if err := d.setFundQuantity(ctx, quantity); err != nil {
		return false, err
	}
	if err := d.setSymbol(ctx, selFundToBuyInput, buySymbol); err != nil {
		return false, err
	}
	if err := d.page.WaitFor(ctx, selFundToBuyDetail); err != nil {
		return false, fmt.Errorf("unable to load fund to buy %s: %w", buySymbol, err)
	}
	return d.placeOrder(ctx, logger)
}

// orderLogger tags every log entry of one order attempt with a fresh id.
func (d *Driver) orderLogger(kind, account, symbol string, fields ...zap.Field) *zap.Logger {
	base := []zap.Field{
		zap.String("order_id", uuid.Must(uuid.NewV7()).String()),
		zap.String("kind", kind),
		zap.String("account", account),
		zap.String("symbol", symbol),
	}
	return d.logger.With(append(base, fields...)...)
}

func (d *Driver) gotoStockTicket(ctx context.Context, account string) error {
	if err := d.page.Goto(ctx, tradeStockURL+"?ACCOUNT="+account); err != nil {
		return fmt.Errorf("unable to open stock ticket for account %s: %w", account, err)
	}
	return nil
}

func (d *Driver) gotoFundTicket(ctx context.Context, account string) error {
	if err := d.page.Goto(ctx, tradeMutualFundURL+"?ACCOUNT="+account); err != nil {
		return fmt.Errorf("unable to open mutual fund ticket for account %s: %w", account, err)
	}
	return nil
}

func (d *Driver) setSymbol(ctx context.Context, selector, symbol string) error {
	if err := d.page.FillAndEnter(ctx, selector, symbol); err != nil {
		return fmt.Errorf("unable to set symbol %s: %w", symbol, err)
	}
	return nil
}

// setFundSymbol enters the fund symbol and waits for its detail pane,
// the mutual fund ticket loads it asynchronously.
func (d *Driver) setFundSymbol(ctx context.Context, symbol string) error {
	if err := d.setSymbol(ctx, selSymbolInput, symbol); err != nil {
		return err
	}
	if err := d.page.WaitFor(ctx, selFundDetail); err != nil {
		return fmt.Errorf("unable to load fund %s: %w", symbol, err)
	}
	return nil
}

func (d *Driver) setAction(ctx context.Context, action Action) error {
	selector := selBuy
	if action == ActionSell {
		selector = selSell
	}
	if err := d.page.Click(ctx, selector); err != nil {
		return fmt.Errorf("unable to select action %v: %w", action, err)
	}
	return nil
}

// setFundAction picks an entry from the mutual fund Action dropdown.
func (d *Driver) setFundAction(ctx context.Context, action string) error {
	if err := d.page.Click(ctx, selActionDropdown); err != nil {
		return fmt.Errorf("unable to open action dropdown: %w", err)
	}
	if err := d.page.Click(ctx, "text="+action); err != nil {
		return fmt.Errorf("unable to select action %s: %w", action, err)
	}
	return nil
}

func (d *Driver) setUnit(ctx context.Context, unit Unit) error {
	selector := selShares
	if unit == UnitDollars {
		selector = selDollars
	}
	if err := d.page.Click(ctx, selector); err != nil {
		return fmt.Errorf("unable to select unit %v: %w", unit, err)
	}
	return nil
}

func (d *Driver) setStockQuantity(ctx context.Context, quantity string) error {
	if err := d.page.Fill(ctx, selStockQuantity, quantity); err != nil {
		return fmt.Errorf("unable to set quantity %s: %w", quantity, err)
	}
	return nil
}

func (d *Driver) setFundQuantity(ctx context.Context, quantity string) error {
	if err := d.page.Fill(ctx, selFundQuantity, quantity); err != nil {
		return fmt.Errorf("unable to set quantity %s: %w", quantity, err)
	}
	return nil
}

func (d *Driver) setMarket(ctx context.Context) error {
	if err := d.page.Click(ctx, selMarket); err != nil {
		return fmt.Errorf("unable to select market order type: %w", err)
	}
	return nil
}

func (d *Driver) setLimit(ctx context.Context, limit string) error {
	if err := d.page.Click(ctx, selLimit); err != nil {
		return fmt.Errorf("unable to select limit order type: %w", err)
	}
	if err := d.page.Fill(ctx, selLimitPrice, limit); err != nil {
		return fmt.Errorf("unable to set limit price %s: %w", limit, err)
	}
	return nil
}

func (d *Driver) setGTC(ctx context.Context) error {
	if err := d.page.Click(ctx, selGTC); err != nil {
		return fmt.Errorf("unable to select good-til-canceled: %w", err)
	}
	return nil
}

// bidAskCents reads the two quote numbers on the trade ticket. Exactly
// two must be present, anything else means the ticket did not load.
func (d *Driver) bidAskCents(ctx context.Context) (int64, int64, error) {
	texts, err := d.page.InnerTexts(ctx, selBidAskNumber)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to read bid and ask: %w", err)
	}
	if len(texts) != 2 {
		return 0, 0, fmt.Errorf("expected bid and ask, got %d values", len(texts))
	}
	bid, err := money.Cents(texts[0])
	if err != nil {
		return 0, 0, err
	}
	ask, err := money.Cents(texts[1])
	if err != nil {
		return 0, 0, err
	}
	return bid, ask, nil
}

// placeOrder walks the preview and place buttons with a confirmation
// gate after each. Declining either gate abandons the order.
func (d *Driver) placeOrder(ctx context.Context, logger *zap.Logger) (bool, error) {
	if err := d.page.Click(ctx, selPreviewOrder); err != nil {
		return false, fmt.Errorf("unable to preview order: %w", err)
	}

	ok, err := d.confirmer.Confirm("Place order")
	if err != nil {
		return false, fmt.Errorf("unable to confirm order placement: %w", err)
	}
	if !ok {
		logger.Info("order abandoned at preview")
		return false, nil
	}

	if err := d.page.Click(ctx, selPlaceOrder); err != nil {
		return false, fmt.Errorf("unable to place order: %w", err)
	}

	ok, err = d.confirmer.Confirm("Success")
	if err != nil {
		return false, fmt.Errorf("unable to confirm order success: %w", err)
	}
	if !ok {
		logger.Warn("order placement not acknowledged")
		return false, nil
	}

	logger.Info("order placed")
	return true, nil
}
