package fidelity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_MarketOrder(t *testing.T) {
	page := newFakePage()
	confirmer := &fakeConfirmer{}
	driver := newTestDriver(page, confirmer)

	placed, err := driver.MarketOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5")
	require.NoError(t, err)
	assert.True(t, placed)

	assert.Equal(t, []op{
		{"goto", tradeStockURL + "?ACCOUNT=Z12345678", ""},
		{"fill_enter", selSymbolInput, "SPY"},
		{"click", selBuy, ""},
		{"click", selShares, ""},
		{"fill", selStockQuantity, "5"},
		{"click", selMarket, ""},
		{"click", selPreviewOrder, ""},
		{"click", selPlaceOrder, ""},
	}, page.ops)
	assert.Equal(t, []string{"Place order", "Success"}, confirmer.prompts)
}

func TestDriver_MarketOrder_SellDollars(t *testing.T) {
	page := newFakePage()
	driver := newTestDriver(page, nil)

	placed, err := driver.MarketOrder(context.Background(), "Z12345678", "SPY", ActionSell, UnitDollars, "500")
	require.NoError(t, err)
	assert.True(t, placed)

	assert.Contains(t, page.ops, op{"click", selSell, ""})
	assert.Contains(t, page.ops, op{"click", selDollars, ""})
}

func TestDriver_MarketOrder_DeclinedAtPreview(t *testing.T) {
	page := newFakePage()
	confirmer := &fakeConfirmer{answers: []bool{false}}
	driver := newTestDriver(page, confirmer)

	placed, err := driver.MarketOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5")
	require.NoError(t, err)
	assert.False(t, placed)

	assert.NotContains(t, page.ops, op{"click", selPlaceOrder, ""})
	assert.Equal(t, []string{"Place order"}, confirmer.prompts)
}

func TestDriver_MarketOrder_NotAcknowledged(t *testing.T) {
	page := newFakePage()
	confirmer := &fakeConfirmer{answers: []bool{true, false}}
	driver := newTestDriver(page, confirmer)

	placed, err := driver.MarketOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5")
	require.NoError(t, err)
	assert.False(t, placed)

	assert.Contains(t, page.ops, op{"click", selPlaceOrder, ""})
}

func TestDriver_MarketOrder_InvalidArguments(t *testing.T) {
	driver := newTestDriver(newFakePage(), nil)
	ctx := context.Background()

	_, err := driver.MarketOrder(ctx, "Z12345678", "SPY", Action(42), UnitShares, "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action must be")

	_, err = driver.MarketOrder(ctx, "Z12345678", "SPY", ActionBuy, Unit(42), "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit must be")
}

func TestDriver_MarketOrder_UIError(t *testing.T) {
	page := newFakePage()
	page.failOn[selMarket] = errors.New("element not found")
	driver := newTestDriver(page, nil)

	placed, err := driver.MarketOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5")
	require.Error(t, err)
	assert.False(t, placed)
	assert.NotContains(t, page.ops, op{"click", selPreviewOrder, ""})
}

func TestDriver_LimitOrder(t *testing.T) {
	page := newFakePage()
	driver := newTestDriver(page, nil)

	placed, err := driver.LimitOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5", "440.10")
	require.NoError(t, err)
	assert.True(t, placed)

	assert.Equal(t, []op{
		{"goto", tradeStockURL + "?ACCOUNT=Z12345678", ""},
		{"fill_enter", selSymbolInput, "SPY"},
		{"click", selBuy, ""},
		{"click", selShares, ""},
		{"fill", selStockQuantity, "5"},
		{"click", selLimit, ""},
		{"fill", selLimitPrice, "440.10"},
		{"click", selPreviewOrder, ""},
		{"click", selPlaceOrder, ""},
	}, page.ops)
}

func TestDriver_MarketableLimitOrder_Buy(t *testing.T) {
	page := newFakePage()
	page.allTexts[selBidAskNumber] = []string{"101.57", "101.60"}
	driver := newTestDriver(page, nil)

	placed, err := driver.MarketableLimitOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5", 10)
	require.NoError(t, err)
	assert.True(t, placed)

	// limit = ask + 10 cents
	assert.Contains(t, page.ops, op{"fill", selLimitPrice, "101.70"})
}

func TestDriver_MarketableLimitOrder_Sell(t *testing.T) {
	page := newFakePage()
	page.allTexts[selBidAskNumber] = []string{"101.57", "101.60"}
	driver := newTestDriver(page, nil)

	placed, err := driver.MarketableLimitOrder(context.Background(), "Z12345678", "SPY", ActionSell, UnitShares, "5", 10)
	require.NoError(t, err)
	assert.True(t, placed)

	// limit = bid - 10 cents
	assert.Contains(t, page.ops, op{"fill", selLimitPrice, "101.47"})
}

func TestDriver_MarketableLimitOrder_NegativeBuffer(t *testing.T) {
	driver := newTestDriver(newFakePage(), nil)

	_, err := driver.MarketableLimitOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonnegative")
}

func TestDriver_MarketableLimitOrder_MissingBidAsk(t *testing.T) {
	page := newFakePage()
	page.allTexts[selBidAskNumber] = []string{"101.57"}
	driver := newTestDriver(page, nil)

	placed, err := driver.MarketableLimitOrder(context.Background(), "Z12345678", "SPY", ActionBuy, UnitShares, "5", 10)
	require.Error(t, err)
	assert.False(t, placed)
	assert.Contains(t, err.Error(), "expected bid and ask")
}

func TestDriver_GTCOrder(t *testing.T) {
	page := newFakePage()
	driver := newTestDriver(page, nil)

	placed, err := driver.GTCOrder(context.Background(), "Z12345678", "SPY", ActionSell, "5", "450.00")
	require.NoError(t, err)
	assert.True(t, placed)

	assert.Equal(t, []op{
		{"goto", tradeStockURL + "?ACCOUNT=Z12345678", ""},
		{"fill_enter", selSymbolInput, "SPY"},
		{"click", selSell, ""},
		{"click", selShares, ""},
		{"fill", selStockQuantity, "5"},
		{"click", selLimit, ""},
		{"fill", selLimitPrice, "450.00"},
		{"click", selGTC, ""},
		{"click", selPreviewOrder, ""},
		{"click", selPlaceOrder, ""},
	}, page.ops)
}

func TestDriver_BuyMutualFund(t *testing.T) {
	page := newFakePage()
	driver := newTestDriver(page, nil)

	placed, err := driver.BuyMutualFund(context.Background(), "Z12345678", "FXAIX", "100")
	require.NoError(t, err)
	assert.True(t, placed)

	assert.Equal(t, []op{
		{"goto", tradeMutualFundURL + "?ACCOUNT=Z12345678", ""},
		{"fill_enter", selSymbolInput, "FXAIX"},
		{"wait", selFundDetail, ""},
		{"click", selActionDropdown, ""},
		{"click", "text=Buy", ""},
		{"fill", selFundQuantity, "100"},
		{"click", selPreviewOrder, ""},
		{"click", selPlaceOrder, ""},
	}, page.ops)
}

func TestDriver_SellMutualFund(t *testing.T) {
	page := newFakePage()
	driver := newTestDriver(page, nil)

	placed, err := driver.SellMutualFund(context.Background(), "Z12345678", "FXAIX", UnitDollars, "100")
	require.NoError(t, err)
	assert.True(t, placed)

	assert.Equal(t, []op{
		{"goto", tradeMutualFundURL + "?ACCOUNT=Z12345678", ""},
		{"fill_enter", selSymbolInput, "FXAIX"},
		{"wait", selFundDetail, ""},
		{"click", selActionDropdown, ""},
		{"click", "text=Sell", ""},
		{"click", selDollars, ""},
		{"fill", selFundQuantity, "100"},
		{"click", selPreviewOrder, ""},
		{"click", selPlaceOrder, ""},
	}, page.ops)
}

func TestDriver_ExchangeMutualFund(t *testing.T) {
	page := newFakePage()
	driver := newTestDriver(page, nil)

	placed, err := driver.ExchangeMutualFund(context.Background(), "Z12345678", "FXAIX", UnitShares, "10", "FSKAX")
	require.NoError(t, err)
	assert.True(t, placed)

	assert.Equal(t, []op{
		{"goto", tradeMutualFundURL + "?ACCOUNT=Z12345678", ""},
		{"fill_enter", selSymbolInput, "FXAIX"},
		{"wait", selFundDetail, ""},
		{"click", selActionDropdown, ""},
		{"click", "text=Exchange", ""},
		{"click", selShares, ""},
		{"fill", selFundQuantity, "10"},
		{"fill_enter", selFundToBuyInput, "FSKAX"},
		{"wait", selFundToBuyDetail, ""},
		{"click", selPreviewOrder, ""},
		{"click", selPlaceOrder, ""},
	}, page.ops)
}

func TestDriver_SellMutualFund_InvalidUnit(t *testing.T) {
	driver := newTestDriver(newFakePage(), nil)

	_, err := driver.SellMutualFund(context.Background(), "Z12345678", "FXAIX", Unit(42), "100")
	require.Error(t, err)
}

func TestDriver_ExchangeMutualFund_InvalidUnit(t *testing.T) {
	driver := newTestDriver(newFakePage(), nil)

	_, err := driver.ExchangeMutualFund(context.Background(), "Z12345678", "FXAIX", Unit(42), "10", "FSKAX")
	require.Error(t, err)
}
