package pricing

import "strings"

// DefaultCity is used when the postcode is absent or matches no prefix.
const DefaultCity = "London"

// Two-letter postcode areas checked before the single-letter fallback.
var multiPrefixCities = map[string]string{
	"SW": "London",
	"SE": "London",
	"NW": "London",
	"EC": "London",
	"WC": "London",
	"BS": "Bristol",
	"LS": "Leeds",
	"NE": "Newcastle",
	"EH": "Edinburgh",
	"CF": "Cardiff",
	"BT": "Belfast",
	"NG": "Nottingham",
}

var singlePrefixCities = map[string]string{
	"B": "Birmingham",
	"M": "Manchester",
	"L": "Liverpool",
	"G": "Glasgow",
	"S": "Southampton",
	"E": "London",
	"N": "London",
	"W": "London",
}

// CityForPostcode resolves a display city from a postcode prefix. Two-letter
// areas win over single-letter ones; "S" directly followed by a digit is the
// Sheffield area, distinct from the bare "S" mapping.
func CityForPostcode(postcode string) string {
	pc := strings.ToUpper(strings.TrimSpace(postcode))
	if pc == "" {
		return DefaultCity
	}

	if len(pc) >= 2 {
		if city, ok := multiPrefixCities[pc[:2]]; ok {
			return city
		}
		if pc[0] == 'S' && pc[1] >= '0' && pc[1] <= '9' {
			return "Sheffield"
		}
	}
	if city, ok := singlePrefixCities[pc[:1]]; ok {
		return city
	}
	return DefaultCity
}
