package validate

import (
	"context"
	"testing"

	"nomadgraph/internal/store"
)

type mockValidator struct {
	summary        *store.GraphSummary
	invalid        []store.RelationshipRecord
	loops          []store.RelationshipRecord
	withoutFormula []string
	untyped        []string
}

func (m *mockValidator) Summary(ctx context.Context) (*store.GraphSummary, error) {
	if m.summary == nil {
		return &store.GraphSummary{RelationshipTypes: map[string]int64{}}, nil
	}
	return m.summary, nil
}

func (m *mockValidator) InvalidConfidences(ctx context.Context) ([]store.RelationshipRecord, error) {
	return m.invalid, nil
}

func (m *mockValidator) SelfLoops(ctx context.Context) ([]store.RelationshipRecord, error) {
	return m.loops, nil
}

func (m *mockValidator) EntriesWithoutFormula(ctx context.Context) ([]string, error) {
	return m.withoutFormula, nil
}

func (m *mockValidator) UntypedEntries(ctx context.Context) ([]string, error) {
	return m.untyped, nil
}

func TestRun_CleanGraph(t *testing.T) {
	report, err := Run(context.Background(), &mockValidator{
		summary: &store.GraphSummary{RelationshipTypes: map[string]int64{
			"WORKFLOW_STEP": 5,
			"SAME_MATERIAL": 2,
			"CONTAINS":      7,
		}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("issues on clean graph: %+v", report.Issues)
	}
	if report.Errors() != 0 {
		t.Fatalf("error count = %d", report.Errors())
	}
}

func TestRun_ReportsIssues(t *testing.T) {
	report, err := Run(context.Background(), &mockValidator{
		summary: &store.GraphSummary{RelationshipTypes: map[string]int64{
			"WORKFLOW_STEP": 5,
			"HAND_CRAFTED":  1,
		}},
		invalid:        []store.RelationshipRecord{{FromID: "e1", ToID: "e2", Type: "WORKFLOW_STEP", Confidence: 1.3}},
		loops:          []store.RelationshipRecord{{FromID: "e3", ToID: "e3", Type: "SAME_MATERIAL"}},
		withoutFormula: []string{"e4"},
		untyped:        []string{"e4", "e5"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Issues) != 6 {
		t.Fatalf("issues = %d, want 6: %+v", len(report.Issues), report.Issues)
	}
	if report.Errors() != 2 {
		t.Fatalf("errors = %d, want 2", report.Errors())
	}

	byCode := make(map[string]int)
	for _, issue := range report.Issues {
		byCode[issue.Code]++
	}
	if byCode[codeConfidenceOutOfBounds] != 1 || byCode[codeSelfLoop] != 1 {
		t.Fatalf("error issues wrong: %v", byCode)
	}
	if byCode[codeMissingFormula] != 1 || byCode[codeMissingEntryType] != 2 || byCode[codeUnknownRelType] != 1 {
		t.Fatalf("warning issues wrong: %v", byCode)
	}
}

func TestRun_NilStore(t *testing.T) {
	if _, err := Run(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}
