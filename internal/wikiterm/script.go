package wikiterm

// Arabic block boundaries used for script detection.
const (
	arabicFirst = 0x0600
	arabicLast  = 0x06FF
)

// ContainsArabic reports whether s has any code point in the Arabic block.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if r >= arabicFirst && r <= arabicLast {
			return true
		}
	}
	return false
}
