package workflow

import (
	"sort"
	"strings"
)

// Stage is a coarse position within a computational workflow.
type Stage string

const (
	StageStructural Stage = "structural"
	StageElectronic Stage = "electronic"
	StageDerived    Stage = "derived"
	StageAnalysis   Stage = "analysis"
	StageUnknown    Stage = "unknown"
)

// StageRule maps an entry-type keyword to a stage and base priority. Lower
// priority sorts earlier. The ordering policy lives in this table rather
// than in conditionals so it can be inspected and extended as data.
type StageRule struct {
	Keyword  string
	Stage    Stage
	Priority int
}

// StageRules is matched in order; the first keyword contained in the entry
// type wins. The derived keywords come before "structure" so that a type
// like band_structure lands in the derived bucket, not the structural one.
var StageRules = []StageRule{
	{Keyword: "geometry", Stage: StageStructural, Priority: 10},
	{Keyword: "optimization", Stage: StageStructural, Priority: 10},
	{Keyword: "relax", Stage: StageStructural, Priority: 10},
	{Keyword: "scf", Stage: StageElectronic, Priority: 20},
	{Keyword: "dft", Stage: StageElectronic, Priority: 20},
	{Keyword: "single_point", Stage: StageElectronic, Priority: 20},
	{Keyword: "dos", Stage: StageDerived, Priority: 30},
	{Keyword: "band", Stage: StageDerived, Priority: 30},
	{Keyword: "spectr", Stage: StageDerived, Priority: 30},
	{Keyword: "frequency", Stage: StageDerived, Priority: 30},
	{Keyword: "structure", Stage: StageStructural, Priority: 10},
	{Keyword: "analysis", Stage: StageAnalysis, Priority: 40},
	{Keyword: "post", Stage: StageAnalysis, Priority: 40},
}

// neutralPriority sits between the electronic and derived buckets so entries
// without a recognised keyword neither lead nor trail the workflow.
const neutralPriority = 25

// StageOf classifies an entry type against the rule table.
func StageOf(entryType string) Stage {
	lower := strings.ToLower(entryType)
	for _, rule := range StageRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Stage
		}
	}
	return StageUnknown
}

// ExecutionPriority computes the adjusted sort priority of one entry: the
// stage bucket from the keyword table, nudged by the file summary. Input
// files without outputs suggest an early step; outputs without inputs a
// late one.
func ExecutionPriority(entry Entry) int {
	priority := neutralPriority
	lower := strings.ToLower(entry.EntryType)
	for _, rule := range StageRules {
		if strings.Contains(lower, rule.Keyword) {
			priority = rule.Priority
			break
		}
	}

	if entry.Files.HasInputFiles && !entry.Files.HasOutput {
		priority -= 5
	} else if entry.Files.HasOutput && !entry.Files.HasInputFiles {
		priority += 5
	}
	return priority
}

// OrderByExecution sorts a group of entries into likely execution order.
// The sort must be stable: ties keep input order, which is what makes
// repeated runs over a fixed entry set reproducible.
func OrderByExecution(entries []Entry) []Entry {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ExecutionPriority(ordered[i]) < ExecutionPriority(ordered[j])
	})
	return ordered
}
