package rules

// defaultRules is the built-in rule table used when no rules file exists or
// the file cannot be parsed. The tool must stay operable without a file.
var defaultRules = []struct {
	category string
	keywords []string
}{
	{"Supermercado", []string{"mercadona", "carrefour", "lidl", "aldi", "dia", "eroski", "alcampo", "hipercor"}},
	{"Restaurantes y bares", []string{"restaurant", "mcdonald", "burger", "pizza", "kebab", "cafeteria", "bar", "cerveceria"}},
	{"Gasolina", []string{"shell", "repsol", "cepsa", "bp", "galp", "gasolinera"}},
	{"Transporte Público", []string{"metro", "renfe", "uber", "cabify", "taxi", "bus", "emt"}},
	{"Suscripciones", []string{"netflix", "spotify", "hbo", "disney", "prime video", "youtube", "apple"}},
	{"Internet y móviles", []string{"vodafone", "movistar", "orange", "yoigo", "masmovil", "pepephone", "digi"}},
	{"Suministros (luz, agua y gas)", []string{"iberdrola", "endesa", "naturgy", "aqualia", "octopus", "holaluz"}},
	{"Ropa", []string{"zara", "h&m", "mango", "pull&bear", "bershka", "primark", "decathlon"}},
	{"Salud y belleza", []string{"farmacia", "pharmacy", "druni", "primor", "sephora"}},
	{"Deporte", []string{"gym", "gimnasio", "fitness", "mcfit", "basicfit"}},
}

// DefaultSet returns a fresh copy of the built-in rule table.
func DefaultSet() *Set {
	s := NewSet()
	for _, entry := range defaultRules {
		for _, kw := range entry.keywords {
			s.Add(entry.category, kw)
		}
	}
	return s
}
