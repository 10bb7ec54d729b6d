// Package convert normalizes free-form ingredient measures between metric and
// imperial units. Every function here is total: input that cannot be parsed or
// converted comes back unchanged.
package convert

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

// System is a target unit system.
type System int

const (
	Imperial System = iota
	Metric
)

// ParseSystem maps a user-supplied unit system name to a System.
// Anything other than "metric" is Imperial.
func ParseSystem(s string) System {
	if strings.EqualFold(strings.TrimSpace(s), "metric") {
		return Metric
	}
	return Imperial
}

func (s System) String() string {
	if s == Metric {
		return "metric"
	}
	return "imperial"
}

// suffix is appended to every converted amount.
func (s System) suffix() string {
	if s == Metric {
		return " ml"
	}
	return " oz"
}

const mlPerOz = 29.5735

// factor holds the multipliers from a unit to ml and to fluid oz.
type factor struct {
	toMl float64
	toOz float64
}

// units is the recognized unit table. The cup and lb oz factors are the
// published ones and are not derived from toMl, so only ml, cl, l and oz
// round-trip through metric.
var units = map[string]factor{
	"oz":  {toMl: mlPerOz, toOz: 1},
	"ml":  {toMl: 1, toOz: 0.033814},
	"cl":  {toMl: 10, toOz: 0.33814},
	"l":   {toMl: 1000, toOz: 33.814},
	"cup": {toMl: 240, toOz: 0.00422675},
	"lb":  {toMl: 453.592, toOz: 0.00220462},
}

var unitAliases = map[string]string{
	"cups": "cup",
	"lbs":  "lb",
}

// qualifiers mark phrases with no fixed amount, e.g. "salt to taste".
var qualifiers = map[string]bool{
	"to":     true,
	"taste":  true,
	"needed": true,
}

// Convert rewrites quantity into the target system, e.g. "2 oz" → "59.15 ml".
func Convert(quantity string, target System) string {
	p := parse(quantity)
	if p.kind != shapeMeasure {
		return quantity
	}

	f, ok := lookupUnit(p.unit)
	if !ok {
		return quantity
	}

	amount, _ := p.amount.Float64()
	mult := f.toOz
	if target == Metric {
		mult = f.toMl
	}
	v := amount * mult
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return quantity
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + target.suffix()
}

// Drink returns a copy of d with every ingredient measure converted.
func Drink(d domain.Drink, target System) domain.Drink {
	out := d.Clone()
	for i := range out.Ingredients {
		if out.Ingredients[i].Measure != "" {
			out.Ingredients[i].Measure = Convert(out.Ingredients[i].Measure, target)
		}
	}
	return out
}

func lookupUnit(u string) (factor, bool) {
	u = strings.ToLower(strings.TrimSuffix(u, "."))
	if alias, ok := unitAliases[u]; ok {
		u = alias
	}
	f, ok := units[u]
	return f, ok
}

// shape is the classification of a tokenized quantity.
type shape int

const (
	shapeEmpty     shape = iota // blank input
	shapeSingle                 // one token, no unit
	shapeQualifier              // "to taste" style phrase
	shapeInvalid                // amount did not parse
	shapeMeasure                // amount and unit extracted
)

type parsed struct {
	kind   shape
	amount *big.Rat
	unit   string
}

// parse runs tokenize → classify → extract.
func parse(quantity string) parsed {
	tokens := strings.Fields(quantity)

	switch {
	case len(tokens) == 0:
		return parsed{kind: shapeEmpty}
	case len(tokens) == 1:
		return parsed{kind: shapeSingle}
	case isQualifierPhrase(tokens):
		return parsed{kind: shapeQualifier}
	}

	amount, ok := parseAmount(tokens[0])
	if !ok {
		return parsed{kind: shapeInvalid}
	}

	// "1 1/2 oz": a pure fraction right after a whole amount is part of it.
	if len(tokens) >= 3 && strings.Contains(tokens[1], "/") {
		if frac, ok := parseAmount(tokens[1]); ok && amount.IsInt() {
			amount.Add(amount, frac)
		}
	}

	return parsed{kind: shapeMeasure, amount: amount, unit: tokens[len(tokens)-1]}
}

// isQualifierPhrase reports whether any token after the first is a qualifier word.
func isQualifierPhrase(tokens []string) bool {
	for _, tok := range tokens[1:] {
		if qualifiers[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}

var (
	decimalRe  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	fractionRe = regexp.MustCompile(`^(\d+)/(\d+)$`)
)

// parseAmount accepts decimals ("1.5") and simple fractions ("1/2"), base 10
// only. Signs, exponents and base prefixes are rejected.
func parseAmount(tok string) (*big.Rat, bool) {
	if decimalRe.MatchString(tok) {
		return new(big.Rat).SetString(tok)
	}

	m := fractionRe.FindStringSubmatch(tok)
	if m == nil {
		return nil, false
	}
	num, ok := new(big.Int).SetString(m[1], 10)
	if !ok {
		return nil, false
	}
	den, ok := new(big.Int).SetString(m[2], 10)
	if !ok || den.Sign() == 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}
