package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
}

// FormatMoney renders an amount for display with grouping separators and
// two decimal places, prefixed with the currency symbol. Unknown currencies
// fall back to their code.
func FormatMoney(currency string, amount float64) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	return moneyPrinter.Sprintf("%s%v", symbol,
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
