// Package money formats the storefront's centavo amounts for display.
// Amounts are carried as int64 centavos end to end; formatting is the only
// place a fractional representation appears.
package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders centavos as a Brazilian real display string, e.g. 9700 ->
// "R$ 97,00". Prices are always displayed in BRL regardless of UI locale,
// matching the store's single-currency catalog.
func FormatBRL(centavos int64) string {
	negative := centavos < 0
	if negative {
		centavos = -centavos
	}
	amount := currency.BRL.Amount(float64(centavos) / 100)
	formatted := ptBR.Sprint(currency.Symbol(amount))
	if negative {
		return "-" + formatted
	}
	return formatted
}
