package workflow

import "testing"

func TestStageOf(t *testing.T) {
	cases := map[string]Stage{
		"geometry_optimization": StageStructural,
		"GW_relaxation":         StageStructural,
		"scf":                   StageElectronic,
		"DFTCalculation":        StageElectronic,
		"dos":                   StageDerived,
		"band_structure":        StageDerived,
		"post_processing":       StageAnalysis,
		"mystery":               StageUnknown,
		"":                      StageUnknown,
	}
	for entryType, want := range cases {
		if got := StageOf(entryType); got != want {
			t.Errorf("StageOf(%q) = %q, want %q", entryType, got, want)
		}
	}
}

func TestExecutionPriority(t *testing.T) {
	t.Run("keyword buckets", func(t *testing.T) {
		cases := map[string]int{
			"geometry_optimization": 10,
			"scf":                   20,
			"dos":                   30,
			"band_structure":        30,
			"post_processing":       40,
			"unrecognised":          25,
			"":                      25,
		}
		for entryType, want := range cases {
			got := ExecutionPriority(Entry{EntryType: entryType})
			if got != want {
				t.Errorf("priority(%q) = %d, want %d", entryType, got, want)
			}
		}
	})

	t.Run("file nudges", func(t *testing.T) {
		inputOnly := Entry{EntryType: "scf", Files: FileSummary{HasInputFiles: true}}
		if got := ExecutionPriority(inputOnly); got != 15 {
			t.Fatalf("input-only priority = %d, want 15", got)
		}
		outputOnly := Entry{EntryType: "scf", Files: FileSummary{HasOutput: true}}
		if got := ExecutionPriority(outputOnly); got != 25 {
			t.Fatalf("output-only priority = %d, want 25", got)
		}
		both := Entry{EntryType: "scf", Files: FileSummary{HasInputFiles: true, HasOutput: true}}
		if got := ExecutionPriority(both); got != 20 {
			t.Fatalf("both priority = %d, want 20", got)
		}
	})
}

func TestOrderByExecution(t *testing.T) {
	t.Run("stage ordering", func(t *testing.T) {
		entries := []Entry{
			{ID: "c", EntryType: "dos"},
			{ID: "a", EntryType: "geometry_optimization"},
			{ID: "b", EntryType: "scf"},
		}
		ordered := OrderByExecution(entries)
		if ordered[0].ID != "a" || ordered[1].ID != "b" || ordered[2].ID != "c" {
			t.Fatalf("wrong order: %v %v %v", ordered[0].ID, ordered[1].ID, ordered[2].ID)
		}
		if entries[0].ID != "c" {
			t.Fatalf("input slice mutated")
		}
	})

	t.Run("band structure follows its scf", func(t *testing.T) {
		entries := []Entry{
			{ID: "bands", EntryType: "band_structure"},
			{ID: "ground", EntryType: "scf"},
		}
		ordered := OrderByExecution(entries)
		if ordered[0].ID != "ground" || ordered[1].ID != "bands" {
			t.Fatalf("wrong order: %v %v", ordered[0].ID, ordered[1].ID)
		}
	})

	t.Run("stable on ties", func(t *testing.T) {
		entries := []Entry{
			{ID: "first", EntryType: "scf"},
			{ID: "second", EntryType: "scf"},
			{ID: "third", EntryType: "scf"},
		}
		ordered := OrderByExecution(entries)
		for i, want := range []string{"first", "second", "third"} {
			if ordered[i].ID != want {
				t.Fatalf("tie order broken at %d: got %s", i, ordered[i].ID)
			}
		}
	})
}
