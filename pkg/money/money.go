// Package money formatea importes según el idioma del destinatario.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Tag interpreta un locale BCP 47 ("es", "en-US", "tr"); si no es válido usa español.
func Tag(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Spanish
	}
	return tag
}

// Format devuelve el importe con dos decimales, separadores del idioma y el código de moneda,
// ej. "1,234.50 USD" en inglés o "1.234.567,89 EUR" en español.
func Format(amount decimal.Decimal, currency string, tag language.Tag) string {
	p := message.NewPrinter(tag)
	f, _ := amount.Round(2).Float64()
	return p.Sprintf("%v %s", number.Decimal(f, number.Scale(2)), currency)
}
