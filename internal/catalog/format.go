package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var gbPrinter = message.NewPrinter(language.BritishEnglish)

// FormatPrice renders a whole-pound price with en-GB digit grouping, e.g. £1,950,000.
func FormatPrice(price int) string {
	return gbPrinter.Sprintf("£%d", price)
}

// FormatBedrooms renders "1 bedroom" / "3 bedrooms".
func FormatBedrooms(n int) string {
	if n == 1 {
		return "1 bedroom"
	}
	return gbPrinter.Sprintf("%d bedrooms", n)
}
