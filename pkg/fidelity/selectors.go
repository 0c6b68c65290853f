package fidelity

// Trading UI entry points.
const (
	loginURL           = "https://digital.fidelity.com/prgw/digital/login/full-page"
	logoutURL          = "https://login.fidelity.com/ftgw/Fidelity/RtlCust/Logout/Init?AuthRedUrl=https://www.fidelity.com/customer-service/customer-logout"
	positionsURL       = "https://oltx.fidelity.com/ftgw/fbc/oftop/portfolio#positions"
	tradeStockURL      = "https://digital.fidelity.com/ftgw/digital/trade-equity/index"
	tradeMutualFundURL = "https://digital.fidelity.com/ftgw/digital/trade-mutualfund"
)

// Page element selectors. The site ships no stable automation hooks, so
// these track the rendered markup and break whenever the UI changes.
const (
	selCashAvailable       = ".funds-cash"
	selCompanyTitle        = ".company-title"
	selLastPrice           = ".last-price"
	selDollarPercentChange = ".eq-ticket__symbol__dollar_percent_chg_font"
	selBidAskLayout        = ".block-price-layout"
	selVolume              = ".block-volume"
	selBidAskNumber        = ".number"

	selSymbolInput     = "text=Symbol"
	selFundToBuyInput  = "text=Fund to Buy"
	selFundDetail      = ".detail-value"
	selFundToBuyDetail = "#mf-ticket__second-quote-box .detail-value"

	selStockQuantity = "#eqt-shared-quantity"
	selFundQuantity  = "#mf-shared-quantity"

	selBuy            = "text=Buy"
	selSell           = "text=Sell"
	selShares         = "label:has-text('Shares')"
	selDollars        = "text=Dollars"
	selMarket         = "label:has-text('Market')"
	selLimit          = "text=Limit"
	selLimitPrice     = "text=Limit Price"
	selGTC            = "text=GTC"
	selActionDropdown = "text=Action"

	selPreviewOrder = "#previewOrderBtn"
	selPlaceOrder   = "#placeOrderBtn"
	selDownload     = "button[title='Download']"
)
