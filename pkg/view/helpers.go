package view

import "fmt"

// Money renders an amount the way the screens show it, e.g. 249.5 -> "₹249.50".
func Money(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}
