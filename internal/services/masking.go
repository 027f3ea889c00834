package services

import "strings"

// MaskSensitiveValue partially redacts an identifier for display: enough of
// it survives for the owner to recognize, not enough to leak. The function
// is total; inputs shorter than the slice points just yield what remains.
func MaskSensitiveValue(value string) string {
	if strings.Contains(value, "@") {
		// Email: keep two characters of the local part and the full domain.
		local, domain, _ := strings.Cut(value, "@")
		return prefix(local, 2) + "***@" + domain
	}

	if strings.HasPrefix(value, "+") || isAllDigits(value) {
		// Phone number: keep country-code area and the trailing digits.
		return prefix(value, 3) + "***" + suffix(value, 2)
	}

	if strings.HasPrefix(value, "0x") {
		// Wallet address: the conventional 0xabcd...ef12 display form.
		return prefix(value, 6) + "..." + suffix(value, 4)
	}

	return prefix(value, 3) + "***"
}

// prefix returns up to n leading bytes of s.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// suffix returns up to n trailing bytes of s.
func suffix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
