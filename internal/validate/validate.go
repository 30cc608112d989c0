package validate

import (
	"context"
	"fmt"
	"sort"

	"nomadgraph/internal/store"
	"nomadgraph/internal/workflow"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeConfidenceOutOfBounds = "confidence_out_of_bounds"
	codeSelfLoop              = "self_loop"
	codeMissingFormula        = "missing_formula"
	codeMissingEntryType      = "missing_entry_type"
	codeUnknownRelType        = "unknown_relationship_type"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	EntryID  string
	RelType  string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Errors() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

// GraphValidator is the store surface the consistency checks run against.
// Both backends satisfy it.
type GraphValidator interface {
	Summary(ctx context.Context) (*store.GraphSummary, error)
	InvalidConfidences(ctx context.Context) ([]store.RelationshipRecord, error)
	SelfLoops(ctx context.Context) ([]store.RelationshipRecord, error)
	EntriesWithoutFormula(ctx context.Context) ([]string, error)
	UntypedEntries(ctx context.Context) ([]string, error)
}

// knownRelTypes is the edge vocabulary the engine writes, plus the dataset
// membership edge.
var knownRelTypes = map[string]bool{
	workflow.RelProvidesStructure:  true,
	workflow.RelProvidesElectronic: true,
	workflow.RelSimilarCalculation: true,
	workflow.RelProvidesInputData:  true,
	workflow.RelWorkflowStep:       true,
	workflow.RelSameMaterial:       true,
	workflow.RelPeriodicTrend:      true,
	workflow.RelClusterSizeSeries:  true,
	"CONTAINS":                     true,
}

// Run checks the persisted graph for inconsistencies a correct
// reconstruction can never produce. Out-of-range confidences and self-loops
// are errors; gaps the archive itself may contain (missing formulas or
// entry types) are warnings.
func Run(ctx context.Context, db GraphValidator) (*Report, error) {
	if db == nil {
		return nil, fmt.Errorf("store is required")
	}

	issues := make([]Issue, 0)

	invalid, err := db.InvalidConfidences(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invalid confidences: %w", err)
	}
	for _, record := range invalid {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeConfidenceOutOfBounds,
			Message:  fmt.Sprintf("confidence %v outside [0, 1]", record.Confidence),
			EntryID:  record.FromID,
			RelType:  record.Type,
		})
	}

	loops, err := db.SelfLoops(ctx)
	if err != nil {
		return nil, fmt.Errorf("list self loops: %w", err)
	}
	for _, record := range loops {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeSelfLoop,
			Message:  "relationship connects an entry to itself",
			EntryID:  record.FromID,
			RelType:  record.Type,
		})
	}

	withoutFormula, err := db.EntriesWithoutFormula(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries without formula: %w", err)
	}
	for _, entryID := range withoutFormula {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeMissingFormula,
			Message:  "entry has no chemical formula",
			EntryID:  entryID,
		})
	}

	untyped, err := db.UntypedEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list untyped entries: %w", err)
	}
	for _, entryID := range untyped {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeMissingEntryType,
			Message:  "entry has no entry type",
			EntryID:  entryID,
		})
	}

	summary, err := db.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph summary: %w", err)
	}
	unknown := make([]string, 0)
	for relType := range summary.RelationshipTypes {
		if !knownRelTypes[relType] {
			unknown = append(unknown, relType)
		}
	}
	sort.Strings(unknown)
	for _, relType := range unknown {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeUnknownRelType,
			Message:  fmt.Sprintf("relationship type %s is not part of the inference vocabulary", relType),
			RelType:  relType,
		})
	}

	return &Report{Issues: issues}, nil
}
