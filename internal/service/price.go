package service

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	pricePrinter = message.NewPrinter(language.AmericanEnglish)

	currencySymbols = map[string]string{
		"USD": "$",
		"EUR": "€",
		"GBP": "£",
		"JPY": "¥",
	}
)

// FormatPrice renders price in en-US style for currencyCode. Without a code
// the price is shown in lira; an unknown code is appended after the amount.
func FormatPrice(price float64, currencyCode string) string {
	if currencyCode == "" {
		return fmt.Sprintf("₺%.2f", price)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%.2f %s", price, currencyCode)
	}

	scale, _ := currency.Standard.Rounding(unit)
	amount := pricePrinter.Sprint(number.Decimal(price, number.Scale(scale)))
	if symbol, ok := currencySymbols[unit.String()]; ok {
		return symbol + amount
	}
	return unit.String() + " " + amount
}
