// internal/models/countries.go
package models

// Country is one entry of the static catalog backing destination and
// citizenship pickers.
type Country struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Continent string `json:"continent"`
}

// Countries is the recognized country catalog, grouped by continent and
// alphabetical within each group.
var Countries = []Country{
	{"Albania", "AL", "Europe"},
	{"Andorra", "AD", "Europe"},
	{"Austria", "AT", "Europe"},
	{"Belarus", "BY", "Europe"},
	{"Belgium", "BE", "Europe"},
	{"Bosnia and Herzegovina", "BA", "Europe"},
	{"Bulgaria", "BG", "Europe"},
	{"Croatia", "HR", "Europe"},
	{"Cyprus", "CY", "Europe"},
	{"Czech Republic", "CZ", "Europe"},
	{"Denmark", "DK", "Europe"},
	{"Estonia", "EE", "Europe"},
	{"Finland", "FI", "Europe"},
	{"France", "FR", "Europe"},
	{"Germany", "DE", "Europe"},
	{"Greece", "GR", "Europe"},
	{"Hungary", "HU", "Europe"},
	{"Iceland", "IS", "Europe"},
	{"Ireland", "IE", "Europe"},
	{"Italy", "IT", "Europe"},
	{"Latvia", "LV", "Europe"},
	{"Lithuania", "LT", "Europe"},
	{"Luxembourg", "LU", "Europe"},
	{"Malta", "MT", "Europe"},
	{"Netherlands", "NL", "Europe"},
	{"Norway", "NO", "Europe"},
	{"Poland", "PL", "Europe"},
	{"Portugal", "PT", "Europe"},
	{"Romania", "RO", "Europe"},
	{"Slovakia", "SK", "Europe"},
	{"Slovenia", "SI", "Europe"},
	{"Spain", "ES", "Europe"},
	{"Sweden", "SE", "Europe"},
	{"Switzerland", "CH", "Europe"},
	{"United Kingdom", "GB", "Europe"},
	{"Argentina", "AR", "Americas"},
	{"Belize", "BZ", "Americas"},
	{"Bolivia", "BO", "Americas"},
	{"Brazil", "BR", "Americas"},
	{"Canada", "CA", "Americas"},
	{"Chile", "CL", "Americas"},
	{"Colombia", "CO", "Americas"},
	{"Costa Rica", "CR", "Americas"},
	{"Dominica", "DM", "Americas"},
	{"Ecuador", "EC", "Americas"},
	{"El Salvador", "SV", "Americas"},
	{"Guatemala", "GT", "Americas"},
	{"Honduras", "HN", "Americas"},
	{"Mexico", "MX", "Americas"},
	{"Panama", "PA", "Americas"},
	{"Paraguay", "PY", "Americas"},
	{"Peru", "PE", "Americas"},
	{"Uruguay", "UY", "Americas"},
	{"USA", "US", "Americas"},
	{"Australia", "AU", "Oceania"},
	{"Fiji", "FJ", "Oceania"},
	{"New Zealand", "NZ", "Oceania"},
	{"Papua New Guinea", "PG", "Oceania"},
	{"Samoa", "WS", "Oceania"},
	{"Solomon Islands", "SB", "Oceania"},
	{"Vanuatu", "VU", "Oceania"},
}

// CountryByName looks a catalog entry up by its display name.
func CountryByName(name string) (Country, bool) {
	for _, c := range Countries {
		if c.Name == name {
			return c, true
		}
	}
	return Country{}, false
}

// CountryByCode looks a catalog entry up by its ISO code.
func CountryByCode(code string) (Country, bool) {
	for _, c := range Countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}
