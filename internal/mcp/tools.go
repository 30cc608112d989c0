package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"nomadgraph/internal/formula"
	"nomadgraph/internal/reconstruct"
)

// Reconstructions started over MCP assign periodic-trend edges a slightly
// higher confidence than CLI runs, matching the interactive review that
// usually follows them.
const mcpPeriodicConfidence = 0.9

type ReconstructInput struct {
	Identifier string `json:"identifier" jsonschema:"dataset, upload id, or upload name to reconstruct"`
	Strategy   string `json:"strategy,omitempty" jsonschema:"addressing strategy: dataset_id, upload_id, or upload_name"`
	MaxEntries int    `json:"max_entries,omitempty" jsonschema:"hard cap on extracted entries"`
	Additive   bool   `json:"additive,omitempty" jsonschema:"write duplicate edges instead of merging"`
}

type ReconstructOutput struct {
	RunID                string         `json:"run_id"`
	Sampled              bool           `json:"sampled"`
	TotalEstimated       int            `json:"total_estimated"`
	PagesFetched         int            `json:"pages_fetched"`
	EntriesProcessed     int            `json:"entries_processed"`
	EntriesSkipped       int            `json:"entries_skipped"`
	Groups               int            `json:"groups"`
	EntryTypes           map[string]int `json:"entry_types"`
	RelationshipsCreated int            `json:"relationships_created"`
	RelationshipsSkipped int            `json:"relationships_skipped"`
	RelationshipsFailed  int            `json:"relationships_failed"`
	Errors               []string       `json:"errors,omitempty"`
}

type ListDatasetsInput struct {
	Max int `json:"max,omitempty" jsonschema:"maximum number of datasets to list"`
}

type DatasetOutput struct {
	DatasetID   string `json:"dataset_id"`
	DatasetName string `json:"dataset_name"`
	EntryCount  int    `json:"entry_count"`
}

type ListDatasetsOutput struct {
	Datasets []DatasetOutput `json:"datasets"`
}

type AnalyzeFormulasInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of formulas to analyze"`
}

type FormulaAnalysisOutput struct {
	Formula        string `json:"formula"`
	Count          int64  `json:"count"`
	PrimaryElement string `json:"primary_element,omitempty"`
	TotalAtoms     int    `json:"total_atoms"`
	Family         string `json:"family,omitempty"`
}

type AnalyzeFormulasOutput struct {
	Formulas []FormulaAnalysisOutput `json:"formulas"`
}

type GraphSummaryInput struct{}

type GraphSummaryOutput struct {
	Datasets          int64            `json:"datasets"`
	Entries           int64            `json:"entries"`
	Relationships     int64            `json:"relationships"`
	RelationshipTypes map[string]int64 `json:"relationship_types"`
	EntryTypes        map[string]int64 `json:"entry_types"`
}

type EntryRelationshipsInput struct {
	EntryID string `json:"entry_id" jsonschema:"entry to list relationships for"`
}

type RelationshipOutput struct {
	FromID     string  `json:"from_id"`
	ToID       string  `json:"to_id"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Provenance string  `json:"provenance"`
	Direction  string  `json:"direction"`
}

type EntryRelationshipsOutput struct {
	Relationships []RelationshipOutput `json:"relationships"`
}

type ClearDatasetInput struct {
	DatasetID string `json:"dataset_id" jsonschema:"dataset to remove from the graph"`
	Confirm   bool   `json:"confirm" jsonschema:"must be true to actually delete"`
}

type ClearDatasetOutput struct {
	EntriesRemoved int64 `json:"entries_removed"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "reconstruct_dataset",
		Description: "Extract a dataset from the archive and persist the inferred workflow graph",
	}, s.handleReconstruct)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_datasets",
		Description: "List datasets available in the archive",
	}, s.handleListDatasets)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "analyze_formulas",
		Description: "Break down the formulas stored in the graph by element, size, and family",
	}, s.handleAnalyzeFormulas)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "graph_summary",
		Description: "Return node and relationship counts for the current graph",
	}, s.handleGraphSummary)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "entry_relationships",
		Description: "List the relationships touching one entry",
	}, s.handleEntryRelationships)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "clear_dataset",
		Description: "Remove one dataset and its entries from the graph",
	}, s.handleClearDataset)
}

func (s *Server) handleReconstruct(ctx context.Context, req *sdk.CallToolRequest, input ReconstructInput) (*sdk.CallToolResult, ReconstructOutput, error) {
	if input.Identifier == "" {
		return nil, ReconstructOutput{}, fmt.Errorf("identifier is required")
	}

	summary, err := reconstruct.Run(ctx, s.cfg, s.remote, s.db, s.logger, reconstruct.Options{
		Identifier:         input.Identifier,
		Strategy:           reconstruct.Strategy(input.Strategy),
		MaxEntries:         input.MaxEntries,
		AdditiveEdges:      input.Additive,
		PeriodicConfidence: mcpPeriodicConfidence,
	})
	if err != nil {
		return nil, ReconstructOutput{}, err
	}

	output := ReconstructOutput{
		RunID:                summary.RunID,
		Sampled:              summary.Sampled,
		TotalEstimated:       summary.Retrieval.TotalEstimated,
		PagesFetched:         summary.Retrieval.PagesFetched,
		EntriesProcessed:     summary.EntriesProcessed,
		EntriesSkipped:       summary.EntriesSkipped,
		Groups:               summary.Groups,
		EntryTypes:           summary.EntryTypes,
		RelationshipsCreated: summary.RelationshipsCreated,
		RelationshipsSkipped: summary.RelationshipsSkipped,
		RelationshipsFailed:  summary.RelationshipsFailed,
	}
	for _, runErr := range summary.Errors {
		output.Errors = append(output.Errors, runErr.Error())
	}
	return nil, output, nil
}

func (s *Server) handleListDatasets(ctx context.Context, req *sdk.CallToolRequest, input ListDatasetsInput) (*sdk.CallToolResult, ListDatasetsOutput, error) {
	max := input.Max
	if max == 0 {
		max = 50
	}
	datasets, err := s.remote.ListDatasets(ctx, max)
	if err != nil {
		return nil, ListDatasetsOutput{}, err
	}

	output := make([]DatasetOutput, 0, len(datasets))
	for _, dataset := range datasets {
		output = append(output, DatasetOutput{
			DatasetID:   dataset.DatasetID,
			DatasetName: dataset.DatasetName,
			EntryCount:  dataset.EntryCount,
		})
	}
	return nil, ListDatasetsOutput{Datasets: output}, nil
}

func (s *Server) handleAnalyzeFormulas(ctx context.Context, req *sdk.CallToolRequest, input AnalyzeFormulasInput) (*sdk.CallToolResult, AnalyzeFormulasOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 50
	}
	counts, err := s.db.FormulaCounts(ctx, limit)
	if err != nil {
		return nil, AnalyzeFormulasOutput{}, err
	}

	output := make([]FormulaAnalysisOutput, 0, len(counts))
	for _, count := range counts {
		composition := formula.Parse(count.Formula)
		analysis := FormulaAnalysisOutput{
			Formula:        count.Formula,
			Count:          count.Count,
			PrimaryElement: composition.PrimaryElement(),
			TotalAtoms:     composition.TotalAtoms(),
		}
		if family := formula.FamilyOf(analysis.PrimaryElement); family != nil {
			analysis.Family = family.Name
		}
		output = append(output, analysis)
	}
	return nil, AnalyzeFormulasOutput{Formulas: output}, nil
}

func (s *Server) handleGraphSummary(ctx context.Context, req *sdk.CallToolRequest, input GraphSummaryInput) (*sdk.CallToolResult, GraphSummaryOutput, error) {
	summary, err := s.db.Summary(ctx)
	if err != nil {
		return nil, GraphSummaryOutput{}, err
	}
	return nil, GraphSummaryOutput{
		Datasets:          summary.Datasets,
		Entries:           summary.Entries,
		Relationships:     summary.Relationships,
		RelationshipTypes: summary.RelationshipTypes,
		EntryTypes:        summary.EntryTypes,
	}, nil
}

func (s *Server) handleEntryRelationships(ctx context.Context, req *sdk.CallToolRequest, input EntryRelationshipsInput) (*sdk.CallToolResult, EntryRelationshipsOutput, error) {
	if input.EntryID == "" {
		return nil, EntryRelationshipsOutput{}, fmt.Errorf("entry_id is required")
	}
	records, err := s.db.EntryRelationships(ctx, input.EntryID)
	if err != nil {
		return nil, EntryRelationshipsOutput{}, err
	}

	output := make([]RelationshipOutput, 0, len(records))
	for _, record := range records {
		output = append(output, RelationshipOutput{
			FromID:     record.FromID,
			ToID:       record.ToID,
			Type:       record.Type,
			Confidence: record.Confidence,
			Reasoning:  record.Reasoning,
			Provenance: record.Provenance,
			Direction:  record.Direction,
		})
	}
	return nil, EntryRelationshipsOutput{Relationships: output}, nil
}

func (s *Server) handleClearDataset(ctx context.Context, req *sdk.CallToolRequest, input ClearDatasetInput) (*sdk.CallToolResult, ClearDatasetOutput, error) {
	if input.DatasetID == "" {
		return nil, ClearDatasetOutput{}, fmt.Errorf("dataset_id is required")
	}
	if !input.Confirm {
		return nil, ClearDatasetOutput{}, fmt.Errorf("refusing to delete without confirm")
	}
	removed, err := s.db.ClearDataset(ctx, input.DatasetID)
	if err != nil {
		return nil, ClearDatasetOutput{}, err
	}
	return nil, ClearDatasetOutput{EntriesRemoved: removed}, nil
}
