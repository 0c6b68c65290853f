package fidelity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/quanterra/fideligo/pkg/money"
)

// DefaultTimeout is how long element lookups wait before giving up.
const DefaultTimeout = 10 * time.Second

// Driver is a facade over one logged-in trading session on the brokerage
// site. It owns a single page for the session lifetime and performs every
// operation sequentially, it is not safe for concurrent use.
//
// The operator must complete the login in the browser window after Open
// before calling any other method.
type Driver struct {
	page      Page
	browser   playwright.Browser
	logger    *zap.Logger
	confirmer Confirmer
	timeout   time.Duration
}

type Option func(*Driver)

// WithTimeout overrides the default element lookup timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.timeout = timeout }
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// WithConfirmer overrides the stdin/stdout confirmation prompts.
func WithConfirmer(confirmer Confirmer) Option {
	return func(d *Driver) { d.confirmer = confirmer }
}

func NewDriver(browser playwright.Browser, opts ...Option) (*Driver, error) {
	d := &Driver{
		browser:   browser,
		logger:    zap.NewNop(),
		confirmer: newStdioConfirmer(),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}

	page, err := newPlaywrightPage(browser, d.timeout)
	if err != nil {
		return nil, fmt.Errorf("unable to create driver: %w", err)
	}
	d.page = page
	return d, nil
}

// Open navigates to the login page.
func (d *Driver) Open(ctx context.Context) error {
	if err := d.page.Goto(ctx, loginURL); err != nil {
		return fmt.Errorf("unable to open login page: %w", err)
	}
	return nil
}

// Close logs out and closes the browser.
func (d *Driver) Close(ctx context.Context) error {
	if err := d.page.Goto(ctx, logoutURL); err != nil {
		d.logger.Warn("logout failed", zap.Error(err))
	}
	if d.browser == nil {
		return d.page.Close()
	}
	if err := d.browser.Close(); err != nil {
		return fmt.Errorf("unable to close browser: %w", err)
	}
	return nil
}

// CashAvailableToTrade scrapes the cash available to trade in an account.
func (d *Driver) CashAvailableToTrade(ctx context.Context, account string) (money.Amount, error) {
	cash, err := d.cashAvailableToTrade(ctx, account)
	if err != nil {
		d.logger.Error("cash available to trade cannot be found",
			zap.String("account", account), zap.Error(err))
		return money.Amount{}, err
	}
	return cash, nil
}

func (d *Driver) cashAvailableToTrade(ctx context.Context, account string) (money.Amount, error) {
	if err := d.gotoStockTicket(ctx, account); err != nil {
		return money.Amount{}, err
	}
	text, err := d.page.InnerText(ctx, selCashAvailable)
	if err != nil {
		return money.Amount{}, fmt.Errorf("unable to read cash balance: %w", err)
	}
	return money.Parse(text)
}

// Quote scrapes the quote for a stock or ETF.
func (d *Driver) Quote(ctx context.Context, symbol string) (Quote, error) {
	quote, err := d.quote(ctx, symbol)
	if err != nil {
		d.logger.Error("quote information cannot be found",
			zap.String("symbol", symbol), zap.Error(err))
		return Quote{}, err
	}
	return quote, nil
}

func (d *Driver) quote(ctx context.Context, symbol string) (Quote, error) {
	if err := d.page.Goto(ctx, tradeStockURL); err != nil {
		return Quote{}, fmt.Errorf("unable to open trade ticket: %w", err)
	}
	if err := d.setSymbol(ctx, selSymbolInput, symbol); err != nil {
		return Quote{}, err
	}

	name, err := d.page.InnerText(ctx, selCompanyTitle)
	if err != nil {
		return Quote{}, fmt.Errorf("unable to read company name: %w", err)
	}

	lastText, err := d.page.InnerText(ctx, selLastPrice)
	if err != nil {
		return Quote{}, fmt.Errorf("unable to read last price: %w", err)
	}
	lastPrice, err := money.Parse(lastText)
	if err != nil {
		return Quote{}, err
	}

	changes, err := d.page.InnerTexts(ctx, selDollarPercentChange)
	if err != nil {
		return Quote{}, fmt.Errorf("unable to read price change: %w", err)
	}
	if len(changes) < 2 {
		return Quote{}, fmt.Errorf("expected dollar and percent change, got %d values", len(changes))
	}
	dollarChange, err := money.Parse(changes[0])
	if err != nil {
		return Quote{}, err
	}
	percentChange, err := money.Parse(changes[1])
	if err != nil {
		return Quote{}, err
	}

	layouts, err := d.page.InnerTexts(ctx, selBidAskLayout)
	if err != nil {
		return Quote{}, fmt.Errorf("unable to read bid and ask: %w", err)
	}
	if len(layouts) < 2 {
		return Quote{}, fmt.Errorf("expected bid and ask blocks, got %d values", len(layouts))
	}
	bid, bidSize, err := parsePriceSize(layouts[0])
	if err != nil {
		return Quote{}, err
	}
	ask, askSize, err := parsePriceSize(layouts[1])
	if err != nil {
		return Quote{}, err
	}

	volumeText, err := d.page.InnerText(ctx, selVolume)
	if err != nil {
		return Quote{}, fmt.Errorf("unable to read volume: %w", err)
	}
	volume, err := money.ParseInt(volumeText)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Symbol:        symbol,
		Name:          name,
		LastPrice:     lastPrice,
		DollarChange:  dollarChange,
		PercentChange: percentChange,
		Bid:           bid,
		BidSize:       bidSize,
		Ask:           ask,
		AskSize:       askSize,
		Volume:        volume,
	}, nil
}

// parsePriceSize splits a rendered "price x size" block into its parts.
func parsePriceSize(s string) (money.Amount, int64, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return money.Amount{}, 0, fmt.Errorf("malformed price block %q", s)
	}
	price, err := money.Parse(parts[0])
	if err != nil {
		return money.Amount{}, 0, err
	}
	size, err := money.ParseInt(parts[1])
	if err != nil {
		return money.Amount{}, 0, err
	}
	return price, size, nil
}

// DownloadPositions downloads the portfolio positions csv file and
// returns the path of the stored temporary file.
func (d *Driver) DownloadPositions(ctx context.Context) (string, error) {
	path, err := d.downloadPositions(ctx)
	if err != nil {
		d.logger.Error("positions file cannot be downloaded", zap.Error(err))
		return "", err
	}
	return path, nil
}

func (d *Driver) downloadPositions(ctx context.Context) (string, error) {
	if err := d.page.Goto(ctx, positionsURL); err != nil {
		return "", fmt.Errorf("unable to open positions page: %w", err)
	}
	path, err := d.page.Download(ctx, selDownload)
	if err != nil {
		return "", fmt.Errorf("unable to download positions file: %w", err)
	}
	if path == "" {
		return "", errors.New("positions download has no stored file")
	}
	return path, nil
}
