package view

import "fmt"

// MoneyFromCents converts cents to a human-readable currency string.
// E.g., 149900 RUB -> "1499.00 ₽"
func MoneyFromCents(cents int64, currency string) string {
	major := float64(cents) / 100.0
	switch currency {
	case "RUB":
		return fmt.Sprintf("%.2f ₽", major)
	case "EUR":
		return fmt.Sprintf("€%.2f", major)
	case "USD":
		return fmt.Sprintf("$%.2f", major)
	default:
		return fmt.Sprintf("%.2f %s", major, currency)
	}
}
