package dimension

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// grouped renders v with thousands separators and at most three fraction digits.
func grouped(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// jsNumber renders v in its shortest plain decimal form ("1990", "2.5").
func jsNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fixed renders v with exactly digits fraction digits, rounding halves away from zero.
func fixed(v float64, digits int) string {
	p := math.Pow10(digits)
	r := math.Floor(math.Abs(v)*p+0.5) / p
	if v < 0 {
		r = -r
	}
	return strconv.FormatFloat(r, 'f', digits, 64)
}

// plural appends "s" to unit when n != 1.
func plural(n float64, unit string) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
