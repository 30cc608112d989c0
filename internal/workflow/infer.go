package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// Relationship is a directed, typed, confidence-scored edge between two
// entries. All relationships produced by this package are heuristic
// hypotheses, never verified facts; the provenance marker distinguishes
// them from edges created by hand in the store.
type Relationship struct {
	FromID     string
	ToID       string
	Type       string
	Confidence float64
	Reasoning  string
	Provenance string
}

// ProvenanceInferred marks engine-generated relationships.
const ProvenanceInferred = "inferred"

// Relationship type vocabulary.
const (
	RelProvidesStructure  = "PROVIDES_STRUCTURE"
	RelProvidesElectronic = "PROVIDES_ELECTRONIC_STRUCTURE"
	RelSimilarCalculation = "SIMILAR_CALCULATION"
	RelProvidesInputData  = "PROVIDES_INPUT_DATA"
	RelWorkflowStep       = "WORKFLOW_STEP"
	RelSameMaterial       = "SAME_MATERIAL"
	RelPeriodicTrend      = "PERIODIC_TREND"
	RelClusterSizeSeries  = "CLUSTER_SIZE_SERIES"
)

// compatibleSequences are entry-type progressions commonly seen in
// computational campaigns. A predecessor/successor pair drawn from the same
// sequence raises sequential confidence.
var compatibleSequences = [][]string{
	{"geometry_optimization", "single_point", "dos"},
	{"structure", "scf", "band_structure"},
	{"optimization", "frequency", "thermodynamics"},
}

// InferSequential emits exactly one edge per adjacent pair of an
// execution-ordered group.
func InferSequential(ordered []Entry) []Relationship {
	if len(ordered) < 2 {
		return nil
	}
	edges := make([]Relationship, 0, len(ordered)-1)
	for i := 0; i < len(ordered)-1; i++ {
		from := ordered[i]
		to := ordered[i+1]
		edges = append(edges, Relationship{
			FromID:     from.ID,
			ToID:       to.ID,
			Type:       sequentialType(from, to),
			Confidence: sequentialConfidence(from, to),
			Reasoning:  sequentialReasoning(from, to, i),
			Provenance: ProvenanceInferred,
		})
	}
	return edges
}

// sequentialType picks the most specific edge type for an adjacent pair.
// Rules apply in priority order; the identical-type rule only fires for a
// known (non-empty) entry type.
func sequentialType(from, to Entry) string {
	fromStage := StageOf(from.EntryType)
	toStage := StageOf(to.EntryType)

	switch {
	case fromStage == StageStructural && toStage == StageElectronic:
		return RelProvidesStructure
	case fromStage == StageElectronic && toStage == StageDerived:
		return RelProvidesElectronic
	case from.EntryType != "" && from.EntryType == to.EntryType:
		return RelSimilarCalculation
	case from.Files.HasOutput && to.Files.HasInputFiles:
		return RelProvidesInputData
	default:
		return RelWorkflowStep
	}
}

func sequentialConfidence(from, to Entry) float64 {
	confidence := 0.5
	if from.Formula != "" && from.Formula == to.Formula {
		confidence += 0.3
	}
	if from.Files.HasOutput && to.Files.HasInputFiles {
		confidence += 0.2
	}
	if compatibleTypes(from.EntryType, to.EntryType) {
		confidence += 0.2
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func compatibleTypes(a, b string) bool {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	for _, sequence := range compatibleSequences {
		if containsString(sequence, la) && containsString(sequence, lb) {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func sequentialReasoning(from, to Entry, step int) string {
	label := func(e Entry) string {
		if e.EntryType != "" {
			return e.EntryType
		}
		return "unclassified calculation"
	}
	subject := from.Formula
	if subject == "" {
		subject = "unknown material"
	}
	return fmt.Sprintf("Workflow step %d to %d for %s: %s followed by %s",
		step+1, step+2, subject, label(from), label(to))
}

// InferSameMaterial links groups that computed the same material. For every
// formula appearing in two or more groups, one representative entry per
// group is chosen (the first in input order) and each pair of groups gets a
// single edge, keeping the edge count linear in groups rather than entries.
func InferSameMaterial(entries []Entry) []Relationship {
	type representative struct {
		groupKey string
		entry    Entry
	}
	byFormula := make(map[string][]representative)
	seen := make(map[string]map[string]bool)

	for _, entry := range entries {
		if entry.Formula == "" || entry.GroupKey == "" {
			continue
		}
		if seen[entry.Formula] == nil {
			seen[entry.Formula] = make(map[string]bool)
		}
		if seen[entry.Formula][entry.GroupKey] {
			continue
		}
		seen[entry.Formula][entry.GroupKey] = true
		byFormula[entry.Formula] = append(byFormula[entry.Formula], representative{
			groupKey: entry.GroupKey,
			entry:    entry,
		})
	}

	formulas := make([]string, 0, len(byFormula))
	for f := range byFormula {
		if len(byFormula[f]) >= 2 {
			formulas = append(formulas, f)
		}
	}
	sort.Strings(formulas)

	var edges []Relationship
	for _, f := range formulas {
		reps := byFormula[f]
		for i := 0; i < len(reps); i++ {
			for j := i + 1; j < len(reps); j++ {
				edges = append(edges, Relationship{
					FromID:     reps[i].entry.ID,
					ToID:       reps[j].entry.ID,
					Type:       RelSameMaterial,
					Confidence: 0.8,
					Reasoning: fmt.Sprintf("Both uploads contain calculations for %s (%s and %s)",
						f, reps[i].groupKey, reps[j].groupKey),
					Provenance: ProvenanceInferred,
				})
			}
		}
	}
	return edges
}
