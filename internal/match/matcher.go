// Package match implements the categorization decision logic: an operator
// rule pass, a fixed heuristic pattern table, and a small-subscription
// fallback. Classification is a pure function of its inputs plus the current
// rule store snapshot; it performs no I/O and no mutation.
package match

import (
	"strings"

	"github.com/jvaldes/hucha/internal/model"
	"github.com/jvaldes/hucha/internal/rules"
)

// subscriptionsCategory is the category the small-recurring-expense fallback
// suggests when present in the live budget.
const subscriptionsCategory = "Suscripciones"

// subscriptionCeiling bounds the absolute amount, in currency units, below
// which an unmatched expense may still be flagged as a subscription.
const subscriptionCeiling = 50.0

// subscriptionTokens mark payees that look like recurring digital services.
var subscriptionTokens = []string{"app", "cloud", "online", "digital"}

// heuristicPattern pairs a category with the payee fragments that hint at it.
// Patterns are pre-lowercased and matched against a lowercased payee.
type heuristicPattern struct {
	category string
	keywords []string
}

// heuristicPatterns is the fixed fallback table, tried in order after the
// rule pass. Categories absent from the live budget are never suggested.
var heuristicPatterns = []heuristicPattern{
	{"Supermercado", []string{"super", "market", "alimentacion", "comida", "grocery"}},
	{"Restaurantes y bares", []string{"rest", "cafe", "bar", "food", "eat", "cocina", "gastro"}},
	{"Gasolina", []string{"fuel", "gas", "petrol", "gasoil", "carburante"}},
	{"Suscripciones", []string{"subscription", "suscripcion", "monthly", "premium", "plus"}},
	{"Salud y belleza", []string{"health", "salud", "medic", "doctor", "clinic", "dent", "optic"}},
	{"Ropa", []string{"fashion", "moda", "clothes", "wear", "shoes", "zapato", "textile"}},
	{"Transporte Público", []string{"transport", "viaje", "travel", "ticket", "billete"}},
	{"Educación y cultura", []string{"book", "libro", "curso", "academy", "school", "university", "educa"}},
	{"Espectáculos y actividades", []string{"cinema", "cine", "teatro", "concert", "event", "entrada", "ticket"}},
	{"Hogar", []string{"home", "casa", "hogar", "furniture", "mueble", "ikea", "leroy"}},
}

// Matcher maps payee text and amount to a candidate category.
type Matcher struct {
	rules *rules.Store
}

// New creates a matcher backed by the given rule store. The matcher reads the
// store's live snapshot on every call, so rules added mid-session take effect
// for subsequent transactions.
func New(store *rules.Store) *Matcher {
	return &Matcher{rules: store}
}

// Classify returns a category suggestion for the payee, or ok=false when no
// pass produces one. candidates is the list of selectable category names in
// the live budget; the rule pass deliberately ignores it (operator rules are
// trusted), the heuristic passes never suggest outside it.
func (m *Matcher) Classify(payee string, amount float64, candidates []string) (model.Suggestion, bool) {
	if payee == "" {
		return model.Suggestion{}, false
	}

	if category, ok := m.ByRules(payee); ok {
		return model.Suggestion{Category: category, Source: model.SourceRule}, true
	}

	payeeLower := strings.ToLower(payee)
	available := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		available[name] = true
	}

	for _, pattern := range heuristicPatterns {
		if !available[pattern.category] {
			continue
		}
		for _, kw := range pattern.keywords {
			if strings.Contains(payeeLower, kw) {
				return model.Suggestion{Category: pattern.category, Source: model.SourceHeuristic}, true
			}
		}
	}

	if amount < 0 && amount > -subscriptionCeiling && available[subscriptionsCategory] {
		for _, token := range subscriptionTokens {
			if strings.Contains(payeeLower, token) {
				return model.Suggestion{Category: subscriptionsCategory, Source: model.SourceHeuristic}, true
			}
		}
	}

	return model.Suggestion{}, false
}

// ByRules runs only the rule pass: categories in stored order, keywords in
// stored order, case-insensitive substring match against the payee. The first
// hit wins.
func (m *Matcher) ByRules(payee string) (string, bool) {
	if payee == "" {
		return "", false
	}

	payeeLower := strings.ToLower(payee)
	for _, category := range m.rules.Categories() {
		for _, kw := range m.rules.Keywords(category) {
			if strings.Contains(payeeLower, strings.ToLower(kw)) {
				return category, true
			}
		}
	}
	return "", false
}
