package workflow

import (
	"strings"
	"testing"
)

func TestInferPeriodicTrends(t *testing.T) {
	t.Run("adjacent family members", func(t *testing.T) {
		entries := []Entry{
			{ID: "rh", Formula: "Rh4"},
			{ID: "ag", Formula: "Ag4"},
		}
		edges := InferPeriodicTrends(entries, 0.85)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		edge := edges[0]
		if edge.Type != RelPeriodicTrend || edge.Confidence != 0.85 {
			t.Fatalf("unexpected edge: %+v", edge)
		}
		if edge.FromID != "rh" || edge.ToID != "ag" {
			t.Fatalf("wrong direction: %s -> %s", edge.FromID, edge.ToID)
		}
		if !strings.Contains(edge.Reasoning, "transition_metals") {
			t.Fatalf("reasoning missing family: %q", edge.Reasoning)
		}
	})

	t.Run("gaps are bridged", func(t *testing.T) {
		entries := []Entry{
			{ID: "na", Formula: "Na3"},
			{ID: "cs", Formula: "Cs3"},
		}
		edges := InferPeriodicTrends(entries, 0.9)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		if edges[0].FromID != "na" || edges[0].ToID != "cs" || edges[0].Confidence != 0.9 {
			t.Fatalf("unexpected edge: %+v", edges[0])
		}
	})

	t.Run("lone family member yields nothing", func(t *testing.T) {
		if edges := InferPeriodicTrends([]Entry{{ID: "he", Formula: "He"}}, 0.85); len(edges) != 0 {
			t.Fatalf("edges = %d, want 0", len(edges))
		}
	})

	t.Run("one representative per element", func(t *testing.T) {
		entries := []Entry{
			{ID: "na1", Formula: "Na3"},
			{ID: "na2", Formula: "Na5"},
			{ID: "k1", Formula: "K3"},
		}
		edges := InferPeriodicTrends(entries, 0.85)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		if edges[0].FromID != "na1" {
			t.Fatalf("representative not first in input order: %+v", edges[0])
		}
	})
}

func TestInferClusterSeries(t *testing.T) {
	t.Run("same element chain", func(t *testing.T) {
		entries := []Entry{
			{ID: "c8", Formula: "C8"},
			{ID: "c4", Formula: "C4"},
		}
		edges := InferClusterSeries(entries)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		edge := edges[0]
		if edge.Type != RelClusterSizeSeries || edge.Confidence != 0.95 {
			t.Fatalf("unexpected edge: %+v", edge)
		}
		if edge.FromID != "c4" || edge.ToID != "c8" {
			t.Fatalf("chain not size ordered: %s -> %s", edge.FromID, edge.ToID)
		}
	})

	t.Run("single size per element gives no edge", func(t *testing.T) {
		entries := []Entry{
			{ID: "ag", Formula: "Ag4"},
			{ID: "rh", Formula: "Rh4"},
		}
		if edges := InferClusterSeries(entries); len(edges) != 0 {
			t.Fatalf("edges = %d, want 0", len(edges))
		}
	})

	t.Run("family fallback", func(t *testing.T) {
		entries := []Entry{
			{ID: "na2", Formula: "Na2"},
			{ID: "k3", Formula: "K3"},
		}
		edges := InferClusterSeries(entries)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		edge := edges[0]
		if edge.Confidence != 0.85 {
			t.Fatalf("confidence = %v, want 0.85", edge.Confidence)
		}
		if edge.FromID != "na2" || edge.ToID != "k3" {
			t.Fatalf("chain wrong: %s -> %s", edge.FromID, edge.ToID)
		}
		if !strings.Contains(edge.Reasoning, "alkali_metals") {
			t.Fatalf("reasoning missing family: %q", edge.Reasoning)
		}
	})

	t.Run("global fallback", func(t *testing.T) {
		entries := []Entry{
			{ID: "he2", Formula: "He2"},
			{ID: "fe5", Formula: "Fe5"},
		}
		edges := InferClusterSeries(entries)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		if edges[0].Confidence != 0.75 {
			t.Fatalf("confidence = %v, want 0.75", edges[0].Confidence)
		}
		if edges[0].FromID != "he2" || edges[0].ToID != "fe5" {
			t.Fatalf("chain wrong: %s -> %s", edges[0].FromID, edges[0].ToID)
		}
	})

	t.Run("element chains exclude their entries from fallbacks", func(t *testing.T) {
		entries := []Entry{
			{ID: "na2", Formula: "Na2"},
			{ID: "na4", Formula: "Na4"},
			{ID: "k3", Formula: "K3"},
		}
		edges := InferClusterSeries(entries)
		if len(edges) != 1 {
			t.Fatalf("edges = %d, want 1", len(edges))
		}
		if edges[0].Confidence != 0.95 {
			t.Fatalf("confidence = %v, want 0.95", edges[0].Confidence)
		}
	})

	t.Run("malformed formulas are skipped", func(t *testing.T) {
		entries := []Entry{
			{ID: "bad", Formula: "1234"},
			{ID: "empty", Formula: ""},
		}
		if edges := InferClusterSeries(entries); len(edges) != 0 {
			t.Fatalf("edges = %d, want 0", len(edges))
		}
	})
}
