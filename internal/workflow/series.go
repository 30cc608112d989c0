package workflow

import (
	"fmt"
	"sort"

	"nomadgraph/internal/formula"
)

// InferPeriodicTrends connects calculations whose primary elements sit next
// to each other within a chemical family. Only elements actually present are
// considered: a gap in the family is bridged by linking the nearest present
// neighbours. One representative entry per element, the first in input order.
func InferPeriodicTrends(entries []Entry, confidence float64) []Relationship {
	byElement := make(map[string]Entry)
	for _, entry := range entries {
		composition := formula.Parse(entry.Formula)
		element := composition.PrimaryElement()
		if element == "" {
			continue
		}
		if _, ok := byElement[element]; !ok {
			byElement[element] = entry
		}
	}

	var edges []Relationship
	for _, family := range formula.Families {
		var present []string
		for _, element := range family.Elements {
			if _, ok := byElement[element]; ok {
				present = append(present, element)
			}
		}
		for i := 0; i < len(present)-1; i++ {
			from := byElement[present[i]]
			to := byElement[present[i+1]]
			edges = append(edges, Relationship{
				FromID:     from.ID,
				ToID:       to.ID,
				Type:       RelPeriodicTrend,
				Confidence: confidence,
				Reasoning: fmt.Sprintf("Periodic trend across %s (%s): %s to %s",
					family.Name, family.Trend, present[i], present[i+1]),
				Provenance: ProvenanceInferred,
			})
		}
	}
	return edges
}

// InferClusterSeries connects calculations along increasing cluster size.
// It works at three levels of specificity with graceful degradation: chains
// within a single element are preferred, then chains within a chemical
// family, and finally a global chain across all cluster entries. Broader
// levels only consider entries that no narrower level could place in a
// series, and each broader level carries a lower confidence.
func InferClusterSeries(entries []Entry) []Relationship {
	byElement := make(map[string]map[int]Entry)
	for _, entry := range entries {
		composition := formula.Parse(entry.Formula)
		element := composition.PrimaryElement()
		size := composition.TotalAtoms()
		if element == "" || size == 0 {
			continue
		}
		if byElement[element] == nil {
			byElement[element] = make(map[int]Entry)
		}
		if _, ok := byElement[element][size]; !ok {
			byElement[element][size] = entry
		}
	}

	chain := func(points map[int]Entry, confidence float64, describe func(from, to Entry, fromSize, toSize int) string) []Relationship {
		if len(points) < 2 {
			return nil
		}
		sizes := make([]int, 0, len(points))
		for size := range points {
			sizes = append(sizes, size)
		}
		sort.Ints(sizes)
		edges := make([]Relationship, 0, len(sizes)-1)
		for i := 0; i < len(sizes)-1; i++ {
			from := points[sizes[i]]
			to := points[sizes[i+1]]
			edges = append(edges, Relationship{
				FromID:     from.ID,
				ToID:       to.ID,
				Type:       RelClusterSizeSeries,
				Confidence: confidence,
				Reasoning:  describe(from, to, sizes[i], sizes[i+1]),
				Provenance: ProvenanceInferred,
			})
		}
		return edges
	}

	var edges []Relationship
	unplaced := make(map[string]map[int]Entry)

	elements := make([]string, 0, len(byElement))
	for element := range byElement {
		elements = append(elements, element)
	}
	sort.Strings(elements)

	for _, element := range elements {
		points := byElement[element]
		series := chain(points, 0.95, func(from, to Entry, fromSize, toSize int) string {
			return fmt.Sprintf("Cluster size series for %s: %s (%d atoms) to %s (%d atoms)",
				element, from.Formula, fromSize, to.Formula, toSize)
		})
		if len(series) > 0 {
			edges = append(edges, series...)
			continue
		}
		unplaced[element] = points
	}

	if len(unplaced) == 0 {
		return edges
	}

	// Family fallback for elements that could not form a series on their own.
	global := make(map[int]Entry)
	for _, family := range formula.Families {
		pool := make(map[int]Entry)
		for _, element := range family.Elements {
			points, ok := unplaced[element]
			if !ok {
				continue
			}
			delete(unplaced, element)
			for size, rep := range points {
				if _, taken := pool[size]; !taken {
					pool[size] = rep
				}
			}
		}
		series := chain(pool, 0.85, func(from, to Entry, fromSize, toSize int) string {
			return fmt.Sprintf("Cluster size series within %s: %s (%d atoms) to %s (%d atoms)",
				family.Name, from.Formula, fromSize, to.Formula, toSize)
		})
		if len(series) > 0 {
			edges = append(edges, series...)
			continue
		}
		for size, rep := range pool {
			if _, taken := global[size]; !taken {
				global[size] = rep
			}
		}
	}
	for _, element := range elements {
		points, ok := unplaced[element]
		if !ok {
			continue
		}
		for size, rep := range points {
			if _, taken := global[size]; !taken {
				global[size] = rep
			}
		}
	}

	edges = append(edges, chain(global, 0.75, func(from, to Entry, fromSize, toSize int) string {
		return fmt.Sprintf("Cluster size series: %s (%d atoms) to %s (%d atoms)",
			from.Formula, fromSize, to.Formula, toSize)
	})...)
	return edges
}
