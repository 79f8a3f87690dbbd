// Package money renders amounts for display in the Brazilian locale.
package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL formats v in reais with two decimals and pt-BR separators, e.g. "R$ 1.234,56".
func BRL(v float64) string {
	return printer.Sprintf("%v %.2f", currency.Symbol(currency.BRL), v)
}

// Percent formats a rate given in percent, e.g. Percent(2.99) is "2,99%".
func Percent(v float64) string {
	return printer.Sprintf("%.2f%%", v)
}
