package diary

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrInvalidAmount = errors.New("valor inválido")

	brPrinter = message.NewPrinter(language.BrazilianPortuguese)
	brlSymbol = brPrinter.Sprint(currency.Symbol(currency.BRL))
)

// FormatBRL renders an amount as Brazilian reais, e.g. "R$ 25,50".
func FormatBRL(amount float64) string {
	if amount < 0 {
		return "-" + FormatBRL(-amount)
	}
	return brlSymbol + " " + brPrinter.Sprintf("%.2f", amount)
}

// FormatPercent renders a breakdown percentage, e.g. "12,5%".
func FormatPercent(p float64) string {
	return brPrinter.Sprintf("%.1f", p) + "%"
}

// ParseAmount reads a user-typed amount. Both "25,50" and "25.50" are
// accepted, as are thousands separators ("1.234,56") and a leading "R$".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}
