package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

// capitalize upper-cases the first letter and leaves the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// capitalizeProfile title-cases the display fields. Unset optional fields
// are left alone.
func capitalizeProfile(p *model.Profile) {
	p.FirstName = capitalize(p.FirstName)
	p.LastName = capitalize(p.LastName)
	if p.City != nil {
		city := capitalize(*p.City)
		p.City = &city
	}
	if p.Country != nil {
		country := capitalize(*p.Country)
		p.Country = &country
	}
}

// searchTokens splits terms on whitespace and keeps tokens longer than two
// characters. Short tokens match too much to be useful.
func searchTokens(terms string) []string {
	var tokens []string
	for _, token := range strings.Fields(terms) {
		if utf8.RuneCountInString(token) > 2 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
