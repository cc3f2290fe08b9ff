package normalize

import "strings"

// Phone converts raw form input to E.164. Ten digits get a "+1" prefix,
// eleven digits starting with "1" get a "+". Anything else is passed through
// with a "+" prefix rather than rejected; the messaging platform is the
// authority on what it will accept.
func Phone(raw string) string {
	digits := Digits(raw)
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return "+" + digits
	}
}

// Digits strips every non-digit character.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasValidEmail is intentionally permissive: non-empty and contains "@".
func HasValidEmail(raw string) bool {
	return raw != "" && strings.Contains(raw, "@")
}

// SplitName splits a free-form name on whitespace. The first token becomes
// the first name, the rest joined by single spaces become the last name.
func SplitName(raw string) (first, last string) {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return "", ""
	}
	first = parts[0]
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}
	return first, last
}
