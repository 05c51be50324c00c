package calc

import "math"

var ones = [20]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen",
	"Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [10]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// ToWords spells a non-negative integer in the Indian numbering system:
// Hundred, Thousand, Lakh (1e5) and Crore (1e7) groups. Zero (and any
// value below it) spells as the empty string; zero remainders are
// omitted so scale words join with single spaces.
func ToWords(n int) string {
	switch {
	case n <= 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	case n < 1000:
		return group(n, 100, "Hundred")
	case n < 100000:
		return group(n, 1000, "Thousand")
	case n < 10000000:
		return group(n, 100000, "Lakh")
	default:
		return group(n, 10000000, "Crore")
	}
}

func group(n, unit int, scale string) string {
	s := ToWords(n/unit) + " " + scale
	if rem := n % unit; rem != 0 {
		s += " " + ToWords(rem)
	}
	return s
}

// AmountInWords spells the floored rupee value of a total. Fractional
// paise are dropped, not converted. A zero (or negative) total renders
// as just the currency word; that is the intended rendering, not a bug.
func AmountInWords(total float64) string {
	w := ToWords(int(math.Floor(total)))
	if w == "" {
		return "Rupees"
	}
	return w + " Rupees"
}
