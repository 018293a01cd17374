package bot

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizePhoneNumber strips formatting and adds the +380 prefix to
// domestic Ukrainian numbers. Anything unrecognised is returned as digits
// only, keeping a leading plus.
func NormalizePhoneNumber(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	switch {
	case strings.HasPrefix(cleaned, "380") && len(cleaned) == 12:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "80") && len(cleaned) == 11:
		return "+3" + cleaned
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 10:
		return "+38" + cleaned
	}

	if strings.HasPrefix(strings.TrimSpace(phone), "+") && cleaned != "" {
		return "+" + cleaned
	}
	return cleaned
}

// FormatPhoneNumber renders +380XXXXXXXXX as +380 (XX) XXX-XX-XX.
func FormatPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "+380") && len(phone) == 13 {
		return fmt.Sprintf("%s (%s) %s-%s-%s",
			phone[:4],
			phone[4:6],
			phone[6:9],
			phone[9:11],
			phone[11:13])
	}
	return phone
}
