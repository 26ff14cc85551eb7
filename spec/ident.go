package spec

import (
	"strings"
	"unicode"
)

// Kebab converts an identifier to kebab-case: "OrderItem" -> "order-item",
// "user_profile" -> "user-profile". Already-lowercase names pass through.
func Kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	prevLower := false
	for _, r := range s {
		switch {
		case r == '_' || r == ' ' || r == '-':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = true
		}
	}
	return b.String()
}

// Pascal converts an identifier to PascalCase: "order-item" -> "OrderItem".
func Pascal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upperNext := true
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Camel converts an identifier to camelCase: "OrderItem" -> "orderItem".
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}
