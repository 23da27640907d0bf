package validation

import "strings"

// NormalizeCPF strips the usual punctuation from a CPF string, leaving only
// the digits.
func NormalizeCPF(cpf string) string {
	replacer := strings.NewReplacer(".", "", "-", "", " ", "")
	return replacer.Replace(cpf)
}

// IsValidCPF validates a Brazilian CPF number using its two check digits.
// Accepts formatted (000.000.000-00) or bare (00000000000) input.
func IsValidCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)
	if len(cpf) != 11 {
		return false
	}

	digits := make([]int, 11)
	allEqual := true
	for i, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
		if digits[i] != digits[0] {
			allEqual = false
		}
	}

	// CPFs made of a single repeated digit pass the checksum but are invalid
	if allEqual {
		return false
	}

	if checkDigit(digits, 9) != digits[9] {
		return false
	}
	return checkDigit(digits, 10) == digits[10]
}

// checkDigit computes the verification digit over the first n digits, using
// descending weights starting at n+1.
func checkDigit(digits []int, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += digits[i] * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
