// Package format holds the display formatters the pages share. Amounts are
// rendered in the Indian numbering system (₹12,34,567) the way the payroll
// screens present them; rounding to whole rupees matches the original
// display contract.
package format

import (
	"math"
	"strconv"
	"strings"
)

// INR renders a rupee amount with Indian digit grouping and no fraction
// digits, e.g. 1234567.89 -> "₹12,34,568".
func INR(amount float64) string {
	return "₹" + Number(math.Round(amount))
}

// Number renders a value with Indian digit grouping: the last three digits
// form one group, every group before it has two digits.
func Number(value float64) string {
	negative := value < 0
	digits := strconv.FormatFloat(math.Abs(math.Round(value)), 'f', 0, 64)

	grouped := groupIndian(digits)
	if negative {
		return "-" + grouped
	}
	return grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
