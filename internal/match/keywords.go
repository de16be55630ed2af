package match

import "strings"

// stopWords are payee tokens too generic to serve as rule keywords: Spanish
// articles and prepositions, banking noise, and company-form suffixes.
var stopWords = map[string]bool{
	"de": true, "la": true, "el": true, "los": true, "las": true,
	"del": true, "al": true, "en": true, "por": true, "para": true,
	"con": true, "sin": true, "sobre": true, "transfer": true,
	"pago": true, "compra": true, "recibo": true,
	"s.l.": true, "s.a.": true, "sl": true, "sa": true, "slu": true,
	"nº": true, "num": true, "ref": true,
}

// ExtractKeyword picks a rule keyword candidate from a payee: the first
// lowercased token longer than two runes that is not a stop word. Returns ""
// when no token qualifies.
func ExtractKeyword(payee string) string {
	for _, word := range strings.Fields(strings.ToLower(payee)) {
		if stopWords[word] {
			continue
		}
		if len([]rune(word)) > 2 {
			return word
		}
	}
	return ""
}
