package schema

import (
	"strings"
	"unicode"
)

// ToSnake converts a CamelCase entity name to its snake_case table name.
// "AlleleGroupAllele" becomes "allele_group_allele", "HTTPTag" becomes "http_tag".
func ToSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ForeignKeyFor returns the conventional foreign key column referencing name.
func ForeignKeyFor(name string) string {
	return ToSnake(name) + "_id"
}
