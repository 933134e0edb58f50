package email

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount in minor units (cents) for display, e.g. "$12.50".
// Unknown currency codes fall back to "CODE 12.50".
func FormatMoney(minor int64, code string) string {
	amount := decimal.New(minor, -2).StringFixed(2)

	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return strings.ToUpper(code) + " " + amount
	}
	symbol := printer.Sprint(currency.Symbol(unit))
	if strings.HasPrefix(amount, "-") {
		return "-" + symbol + strings.TrimPrefix(amount, "-")
	}
	return symbol + amount
}
