package universe

import "strings"

// assetNames maps ticker symbols to full asset names. Used for display
// only; an unknown ticker falls back to the ticker itself.
var assetNames = map[string]string{
	// US stocks
	"AAPL":  "Apple Inc. (Technology)",
	"MSFT":  "Microsoft Corporation (Technology)",
	"GOOGL": "Alphabet Inc. Class A (Technology)",
	"AMZN":  "Amazon.com Inc. (E-commerce/Cloud)",
	"TSLA":  "Tesla Inc. (Electric Vehicles)",
	"META":  "Meta Platforms Inc. (Social Media)",
	"NFLX":  "Netflix Inc. (Streaming)",
	"NVDA":  "NVIDIA Corporation (Semiconductors)",
	"JPM":   "JPMorgan Chase & Co. (Banking)",
	"JNJ":   "Johnson & Johnson (Healthcare)",
	"PG":    "Procter & Gamble Co. (Consumer Goods)",
	"UNH":   "UnitedHealth Group Inc. (Healthcare)",
	"HD":    "The Home Depot Inc. (Retail)",
	"V":     "Visa Inc. Class A (Financial Services)",
	"MA":    "Mastercard Inc. Class A (Financial Services)",
	"DIS":   "The Walt Disney Company (Entertainment)",
	"ADBE":  "Adobe Inc. (Software)",
	"CRM":   "Salesforce Inc. (Cloud Software)",
	"INTC":  "Intel Corporation (Semiconductors)",
	"AMD":   "Advanced Micro Devices (Semiconductors)",
	"XOM":   "Exxon Mobil Corp. (Energy)",

	// ETFs
	"SPY":  "SPDR S&P 500 ETF Trust (US Large Cap)",
	"QQQ":  "Invesco QQQ Trust ETF (NASDAQ-100)",
	"IWM":  "iShares Russell 2000 ETF (US Small Cap)",
	"EFA":  "iShares MSCI EAFE ETF (International Developed)",
	"EEM":  "iShares MSCI Emerging Markets ETF",
	"VTI":  "Vanguard Total Stock Market ETF",
	"VXUS": "Vanguard Total International Stock ETF",
	"BND":  "Vanguard Total Bond Market ETF",
	"TLT":  "iShares 20+ Year Treasury Bond ETF",
	"LQD":  "iShares iBoxx Investment Grade Corporate Bond ETF",
	"HYG":  "iShares iBoxx High Yield Corporate Bond ETF",
	"VNQ":  "Vanguard Real Estate Index Fund ETF",

	// Commodities
	"GLD":  "SPDR Gold Shares ETF (Gold)",
	"SLV":  "iShares Silver Trust ETF (Silver)",
	"DBA":  "Invesco DB Agriculture Fund ETF",
	"DBC":  "Invesco DB Commodity Index Tracking Fund",
	"USO":  "United States Oil Fund LP ETF (Oil)",
	"IAU":  "iShares Gold Trust ETF (Gold Alternative)",
	"PDBC": "Invesco Optimum Yield Diversified Commodity Strategy ETF",

	// International
	"FXI":  "iShares China Large-Cap ETF",
	"EWJ":  "iShares MSCI Japan ETF",
	"EWG":  "iShares MSCI Germany ETF",
	"EWU":  "iShares MSCI United Kingdom ETF",
	"EWZ":  "iShares MSCI Brazil ETF",
	"INDA": "iShares MSCI India ETF",

	// Sector ETFs
	"XLK": "Technology Select Sector SPDR Fund",
	"XLF": "Financial Select Sector SPDR Fund",
	"XLV": "Health Care Select Sector SPDR Fund",
	"XLE": "Energy Select Sector SPDR Fund",
	"XLI": "Industrial Select Sector SPDR Fund",
	"XLP": "Consumer Staples Select Sector SPDR Fund",
	"XLU": "Utilities Select Sector SPDR Fund",
}

// FullName returns the full name for a ticker symbol, or the ticker
// itself when unknown.
func FullName(ticker string) string {
	if name, ok := assetNames[strings.ToUpper(ticker)]; ok {
		return name
	}
	return ticker
}

// DisplayName returns "TICKER - Full Name" for charts and tables, or just
// the ticker when no name is known.
func DisplayName(ticker string) string {
	name := FullName(ticker)
	if name == ticker {
		return ticker
	}
	return ticker + " - " + name
}
