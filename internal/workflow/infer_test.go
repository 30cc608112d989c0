package workflow

import (
	"fmt"
	"testing"
)

func TestInferSequentialTypes(t *testing.T) {
	t.Run("structural feeds electronic", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", EntryType: "geometry_optimization", Formula: "Si2"},
			{ID: "b", EntryType: "scf", Formula: "Si2"},
		})
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		if edges[0].Type != RelProvidesStructure {
			t.Fatalf("type = %s, want %s", edges[0].Type, RelProvidesStructure)
		}
	})

	t.Run("electronic feeds derived", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", EntryType: "scf"},
			{ID: "b", EntryType: "dos"},
		})
		if edges[0].Type != RelProvidesElectronic {
			t.Fatalf("type = %s, want %s", edges[0].Type, RelProvidesElectronic)
		}
	})

	t.Run("scf feeds band structure", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", EntryType: "scf"},
			{ID: "b", EntryType: "band_structure"},
		})
		if edges[0].Type != RelProvidesElectronic {
			t.Fatalf("type = %s, want %s", edges[0].Type, RelProvidesElectronic)
		}
	})

	t.Run("identical known types are similar", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", EntryType: "molecular_dynamics"},
			{ID: "b", EntryType: "molecular_dynamics"},
		})
		if edges[0].Type != RelSimilarCalculation {
			t.Fatalf("type = %s, want %s", edges[0].Type, RelSimilarCalculation)
		}
	})

	t.Run("identical empty types are generic steps", func(t *testing.T) {
		entries := make([]Entry, 8)
		for i := range entries {
			entries[i] = Entry{ID: fmt.Sprintf("w%d", i), Formula: "W2"}
		}
		edges := InferSequential(entries)
		if len(edges) != 7 {
			t.Fatalf("edges = %d, want 7", len(edges))
		}
		for _, edge := range edges {
			if edge.Type != RelWorkflowStep {
				t.Fatalf("type = %s, want %s", edge.Type, RelWorkflowStep)
			}
			if edge.Confidence != 0.8 {
				t.Fatalf("confidence = %v, want 0.8", edge.Confidence)
			}
		}
	})

	t.Run("output into input provides data", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", EntryType: "analysis", Files: FileSummary{HasOutput: true}},
			{ID: "b", EntryType: "mystery", Files: FileSummary{HasInputFiles: true}},
		})
		if edges[0].Type != RelProvidesInputData {
			t.Fatalf("type = %s, want %s", edges[0].Type, RelProvidesInputData)
		}
	})

	t.Run("single entry yields nothing", func(t *testing.T) {
		if edges := InferSequential([]Entry{{ID: "a"}}); len(edges) != 0 {
			t.Fatalf("edges = %d, want 0", len(edges))
		}
	})
}

func TestInferSequentialConfidence(t *testing.T) {
	t.Run("base score", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", Formula: "H2O"},
			{ID: "b", Formula: "CO2"},
		})
		if edges[0].Confidence != 0.5 {
			t.Fatalf("confidence = %v, want 0.5", edges[0].Confidence)
		}
	})

	t.Run("compatible sequence bonus", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", EntryType: "geometry_optimization"},
			{ID: "b", EntryType: "single_point"},
		})
		if edges[0].Confidence != 0.7 {
			t.Fatalf("confidence = %v, want 0.7", edges[0].Confidence)
		}
	})

	t.Run("capped at one", func(t *testing.T) {
		edges := InferSequential([]Entry{
			{ID: "a", EntryType: "geometry_optimization", Formula: "H2O", Files: FileSummary{HasOutput: true}},
			{ID: "b", EntryType: "single_point", Formula: "H2O", Files: FileSummary{HasInputFiles: true}},
		})
		if edges[0].Confidence != 1.0 {
			t.Fatalf("confidence = %v, want 1.0", edges[0].Confidence)
		}
	})

	t.Run("always within bounds", func(t *testing.T) {
		entries := []Entry{
			{ID: "a", EntryType: "structure", Formula: "NaCl", Files: FileSummary{HasInputFiles: true}},
			{ID: "b", EntryType: "scf", Formula: "NaCl", Files: FileSummary{HasInputFiles: true, HasOutput: true}},
			{ID: "c", EntryType: "band_structure", Formula: "NaCl", Files: FileSummary{HasOutput: true}},
			{ID: "d"},
		}
		for _, edge := range InferSequential(entries) {
			if edge.Confidence < 0 || edge.Confidence > 1 {
				t.Fatalf("confidence %v out of bounds for %s -> %s", edge.Confidence, edge.FromID, edge.ToID)
			}
			if edge.Provenance != ProvenanceInferred {
				t.Fatalf("provenance = %q", edge.Provenance)
			}
		}
	})
}

func TestInferSameMaterial(t *testing.T) {
	t.Run("one edge per group pair", func(t *testing.T) {
		entries := []Entry{
			{ID: "a1", Formula: "Na3", GroupKey: "u1"},
			{ID: "a2", Formula: "Na3", GroupKey: "u1"},
			{ID: "b1", Formula: "Na3", GroupKey: "u2"},
		}
		edges := InferSameMaterial(entries)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		edge := edges[0]
		if edge.Type != RelSameMaterial || edge.Confidence != 0.8 {
			t.Fatalf("unexpected edge: %+v", edge)
		}
		if edge.FromID != "a1" || edge.ToID != "b1" {
			t.Fatalf("wrong representatives: %s -> %s", edge.FromID, edge.ToID)
		}
	})

	t.Run("three groups give three edges", func(t *testing.T) {
		entries := []Entry{
			{ID: "a", Formula: "Na3", GroupKey: "u1"},
			{ID: "b", Formula: "Na3", GroupKey: "u2"},
			{ID: "c", Formula: "Na3", GroupKey: "u3"},
		}
		if edges := InferSameMaterial(entries); len(edges) != 3 {
			t.Fatalf("edges = %d, want 3", len(edges))
		}
	})

	t.Run("single group yields nothing", func(t *testing.T) {
		entries := []Entry{
			{ID: "a", Formula: "Na3", GroupKey: "u1"},
			{ID: "b", Formula: "Na3", GroupKey: "u1"},
		}
		if edges := InferSameMaterial(entries); len(edges) != 0 {
			t.Fatalf("edges = %d, want 0", len(edges))
		}
	})

	t.Run("empty formulas never match", func(t *testing.T) {
		entries := []Entry{
			{ID: "a", Formula: "", GroupKey: "u1"},
			{ID: "b", Formula: "", GroupKey: "u2"},
		}
		if edges := InferSameMaterial(entries); len(edges) != 0 {
			t.Fatalf("edges = %d, want 0", len(edges))
		}
	})

	t.Run("deterministic across formulas", func(t *testing.T) {
		entries := []Entry{
			{ID: "w1", Formula: "W2", GroupKey: "u1"},
			{ID: "n1", Formula: "Na3", GroupKey: "u1"},
			{ID: "w2", Formula: "W2", GroupKey: "u2"},
			{ID: "n2", Formula: "Na3", GroupKey: "u2"},
		}
		first := InferSameMaterial(entries)
		second := InferSameMaterial(entries)
		if len(first) != 2 || len(second) != 2 {
			t.Fatalf("edges = %d/%d, want 2", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("runs disagree at %d: %+v vs %+v", i, first[i], second[i])
			}
		}
		if first[0].FromID != "n1" {
			t.Fatalf("formulas not visited in sorted order: %+v", first[0])
		}
	})
}
