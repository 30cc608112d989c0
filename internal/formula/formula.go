package formula

import (
	"regexp"
	"sort"
)

// Composition maps an element symbol to its atom count within one formula.
type Composition map[string]int

var (
	elementCountPattern  = regexp.MustCompile(`^([A-Z][a-z]?)(\d+)$`)
	singleElementPattern = regexp.MustCompile(`^[A-Z][a-z]?$`)
	tokenPattern         = regexp.MustCompile(`([A-Z][a-z]?)(\d*)`)
)

// Parse converts a reduced chemical formula string into a composition.
// Cluster formulas like "Ag4" are the common case; bare symbols count as one
// atom, and anything else is scanned token by token with counts summed per
// symbol. Malformed or empty input yields an empty composition, never an
// error. No chemical-validity judgement is made.
func Parse(formula string) Composition {
	comp := Composition{}

	if m := elementCountPattern.FindStringSubmatch(formula); m != nil {
		comp[m[1]] = parseCount(m[2])
		return comp
	}

	if singleElementPattern.MatchString(formula) {
		comp[formula] = 1
		return comp
	}

	for _, m := range tokenPattern.FindAllStringSubmatch(formula, -1) {
		comp[m[1]] += parseCount(m[2])
	}
	return comp
}

func parseCount(digits string) int {
	if digits == "" {
		return 1
	}
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n
}

// TotalAtoms returns the atom count summed over all elements.
func (c Composition) TotalAtoms() int {
	total := 0
	for _, count := range c {
		total += count
	}
	return total
}

// PrimaryElement returns the element with the highest atom count. Ties break
// alphabetically so the result is stable regardless of map iteration order.
// Returns "" for an empty composition.
func (c Composition) PrimaryElement() string {
	symbols := make([]string, 0, len(c))
	for symbol := range c {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	primary := ""
	best := 0
	for _, symbol := range symbols {
		if c[symbol] > best {
			primary = symbol
			best = c[symbol]
		}
	}
	return primary
}

// Elements returns the element symbols in sorted order.
func (c Composition) Elements() []string {
	symbols := make([]string, 0, len(c))
	for symbol := range c {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
