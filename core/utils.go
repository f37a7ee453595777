package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NormalizeDigits rewrites Persian and Arabic-Indic digits to their ASCII
// equivalents. Registration forms and pasted bank codes routinely arrive
// with either script.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹': // Persian
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩': // Arabic-Indic
			return '0' + (r - '٠')
		}
		return r
	}, s)
}
