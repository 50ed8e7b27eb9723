package pricing

import "fmt"

// FormatCents renders a cent amount as a dollar string, e.g. 4450 -> "$44.50".
func FormatCents(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func formatHintMessage(addMore, discountPercent int) string {
	return fmt.Sprintf("Add %d more to save %d%%", addMore, discountPercent)
}
