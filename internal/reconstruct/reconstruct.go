package reconstruct

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nomadgraph/internal/config"
	"nomadgraph/internal/nomad"
	"nomadgraph/internal/store"
	"nomadgraph/internal/workflow"
)

// Strategy selects how the record set is addressed on the remote service.
type Strategy string

const (
	StrategyDatasetID  Strategy = "dataset_id"
	StrategyUploadID   Strategy = "upload_id"
	StrategyUploadName Strategy = "upload_name"
)

// Configuration errors. These are the only conditions under which Run
// returns before attempting extraction.
var (
	ErrMissingIdentifier = errors.New("dataset identifier is required")
	ErrUnknownStrategy   = errors.New("unknown addressing strategy")
)

// Extractor is the slice of the remote client a reconstruction run needs.
type Extractor interface {
	DatasetEntries(ctx context.Context, datasetID string, maxEntries int) *nomad.RecordSet
	UploadEntries(ctx context.Context, uploadID string, maxEntries int) *nomad.RecordSet
	EntriesByUploadName(ctx context.Context, uploadName string, maxEntries int) *nomad.RecordSet
	EntryFiles(ctx context.Context, entryID string) ([]string, error)
}

type Options struct {
	Identifier string
	Strategy   Strategy

	// MaxEntries caps extraction regardless of the sampling rules. Zero
	// leaves the decision to the sample threshold.
	MaxEntries int

	// AdditiveEdges switches edge writes from merge-if-absent to
	// unconditional create.
	AdditiveEdges bool

	// PeriodicConfidence overrides the confidence assigned to periodic
	// trend edges. Zero keeps the default.
	PeriodicConfidence float64
}

const defaultPeriodicConfidence = 0.85

// Summary is the always-returned outcome of a run. Partial failure is
// reported through the counts and the Errors slice, not through the
// error return.
type Summary struct {
	Identifier string
	Strategy   Strategy
	RunID      string
	Sampled    bool
	Retrieval  nomad.Retrieval

	EntriesProcessed int
	EntriesSkipped   int
	Groups           int
	EntryTypes       map[string]int

	RelationshipsCreated int
	RelationshipsSkipped int
	RelationshipsFailed  int

	Errors []error
}

// Run reconstructs one dataset end to end: extract, normalize, classify,
// infer, persist. Transport and per-record failures are absorbed into the
// summary; only configuration and index-bootstrap errors abort the run.
func Run(ctx context.Context, cfg *config.ProjectConfig, remote Extractor, db store.Store, logger *zap.Logger, options Options) (*Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.Identifier == "" {
		return nil, ErrMissingIdentifier
	}
	if options.Strategy == "" {
		options.Strategy = StrategyDatasetID
	}
	switch options.Strategy {
	case StrategyDatasetID, StrategyUploadID, StrategyUploadName:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, options.Strategy)
	}

	summary := &Summary{
		Identifier: options.Identifier,
		Strategy:   options.Strategy,
		RunID:      uuid.NewString(),
		EntryTypes: make(map[string]int),
	}

	set := extract(ctx, cfg, remote, options, summary, logger)
	summary.Retrieval = set.Retrieval

	enrichFiles(ctx, cfg, remote, set.Records, logger)

	entries := normalize(set.Records, summary, logger)
	summary.EntriesProcessed = len(entries)
	for _, entry := range entries {
		summary.EntryTypes[entry.EntryType]++
	}

	edges := infer(entries, options, summary)

	if err := persist(ctx, db, entries, edges, options, summary, logger); err != nil {
		return nil, err
	}

	logger.Info("reconstruction finished",
		zap.String("identifier", options.Identifier),
		zap.String("run_id", summary.RunID),
		zap.Int("entries", summary.EntriesProcessed),
		zap.Int("relationships", summary.RelationshipsCreated),
		zap.Int("errors", len(summary.Errors)))

	return summary, nil
}

// extract fetches the record set, sampling down large datasets: a preview
// page estimates the total, and anything above the threshold is capped at
// the sample limit.
func extract(ctx context.Context, cfg *config.ProjectConfig, remote Extractor, options Options, summary *Summary, logger *zap.Logger) *nomad.RecordSet {
	fetch := func(max int) *nomad.RecordSet {
		switch options.Strategy {
		case StrategyUploadID:
			return remote.UploadEntries(ctx, options.Identifier, max)
		case StrategyUploadName:
			return remote.EntriesByUploadName(ctx, options.Identifier, max)
		default:
			return remote.DatasetEntries(ctx, options.Identifier, max)
		}
	}

	preview := fetch(cfg.Extraction.PreviewSize)

	limit := options.MaxEntries
	if preview.Retrieval.TotalEstimated > cfg.Extraction.SampleThreshold {
		summary.Sampled = true
		if limit == 0 || limit > cfg.Extraction.SampleLimit {
			limit = cfg.Extraction.SampleLimit
		}
		logger.Warn("dataset exceeds sample threshold, capping extraction",
			zap.Int("total_estimated", preview.Retrieval.TotalEstimated),
			zap.Int("limit", limit))
	}

	if preview.Retrieval.RetrievedCount >= preview.Retrieval.TotalEstimated &&
		(limit == 0 || preview.Retrieval.RetrievedCount <= limit) {
		return preview
	}

	return fetch(limit)
}

// enrichFiles fills in the file listing for records that arrived without
// one, in bounded batches with a fixed pause between batches. This is a
// client-side throttle, not a concurrency primitive.
func enrichFiles(ctx context.Context, cfg *config.ProjectConfig, remote Extractor, records []nomad.Record, logger *zap.Logger) {
	if !cfg.Extraction.IncludeFiles {
		return
	}

	pause := time.Duration(cfg.Extraction.BatchPauseMS) * time.Millisecond
	batch := 0
	for i := range records {
		if len(records[i].Files) > 0 || records[i].EntryID == "" {
			continue
		}

		if batch == cfg.Extraction.BatchSize {
			batch = 0
			select {
			case <-ctx.Done():
				return
			case <-time.After(pause):
			}
		}
		batch++

		files, err := remote.EntryFiles(ctx, records[i].EntryID)
		if err != nil {
			logger.Warn("file listing failed",
				zap.String("entry_id", records[i].EntryID),
				zap.Error(err))
			continue
		}
		records[i].Files = files
	}
}

func normalize(records []nomad.Record, summary *Summary, logger *zap.Logger) []workflow.Entry {
	entries := make([]workflow.Entry, 0, len(records))
	for _, record := range records {
		entry, err := workflow.Normalize(record)
		if err != nil {
			summary.EntriesSkipped++
			summary.Errors = append(summary.Errors, fmt.Errorf("skipping record %q: %w", record.Mainfile, err))
			logger.Warn("skipping malformed record",
				zap.String("mainfile", record.Mainfile),
				zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// infer runs the four relationship passes and dedupes triples so one run
// never writes the same (from, to, type) twice.
func infer(entries []workflow.Entry, options Options, summary *Summary) []workflow.Relationship {
	groups := workflow.GroupByKey(entries)
	summary.Groups = len(groups)

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var edges []workflow.Relationship
	for _, key := range keys {
		ordered := workflow.OrderByExecution(groups[key])
		edges = append(edges, workflow.InferSequential(ordered)...)
	}
	edges = append(edges, workflow.InferSameMaterial(entries)...)

	periodic := options.PeriodicConfidence
	if periodic == 0 {
		periodic = defaultPeriodicConfidence
	}
	edges = append(edges, workflow.InferPeriodicTrends(entries, periodic)...)
	edges = append(edges, workflow.InferClusterSeries(entries)...)

	type triple struct {
		from, to, relType string
	}
	seen := make(map[triple]bool, len(edges))
	deduped := edges[:0]
	for _, edge := range edges {
		key := triple{edge.FromID, edge.ToID, edge.Type}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, edge)
	}
	return deduped
}

// persist writes nodes before any edge that references them. Individual
// write failures are absorbed into the summary.
func persist(ctx context.Context, db store.Store, entries []workflow.Entry, edges []workflow.Relationship, options Options, summary *Summary, logger *zap.Logger) error {
	if err := db.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	if err := db.UpsertDataset(ctx, store.DatasetInput{ID: options.Identifier, Name: options.Identifier}); err != nil {
		summary.Errors = append(summary.Errors, fmt.Errorf("upserting dataset: %w", err))
	}

	written := make(map[string]bool, len(entries))
	for _, entry := range entries {
		input := store.EntryInput{
			ID:             entry.ID,
			Name:           entry.Name,
			EntryType:      entry.EntryType,
			Formula:        entry.Formula,
			GroupKey:       entry.GroupKey,
			DatasetID:      options.Identifier,
			TotalFiles:     entry.Files.TotalFiles,
			HasInputFiles:  entry.Files.HasInputFiles,
			HasOutputFiles: entry.Files.HasOutput,
			HasScripts:     entry.Files.HasScripts,
		}
		if err := db.UpsertEntry(ctx, input); err != nil {
			summary.Errors = append(summary.Errors, fmt.Errorf("upserting entry %s: %w", entry.ID, err))
			logger.Warn("entry upsert failed", zap.String("entry_id", entry.ID), zap.Error(err))
			continue
		}
		written[entry.ID] = true
	}

	for _, edge := range edges {
		if !written[edge.FromID] || !written[edge.ToID] {
			summary.RelationshipsFailed++
			continue
		}

		input := store.RelationshipInput{
			FromID:     edge.FromID,
			ToID:       edge.ToID,
			Type:       edge.Type,
			Confidence: edge.Confidence,
			Reasoning:  edge.Reasoning,
			Provenance: edge.Provenance,
			RunID:      summary.RunID,
		}

		if options.AdditiveEdges {
			if err := db.CreateRelationship(ctx, input); err != nil {
				summary.RelationshipsFailed++
				summary.Errors = append(summary.Errors, fmt.Errorf("creating %s edge %s->%s: %w", edge.Type, edge.FromID, edge.ToID, err))
				continue
			}
			summary.RelationshipsCreated++
			continue
		}

		created, err := db.MergeRelationship(ctx, input)
		if err != nil {
			summary.RelationshipsFailed++
			summary.Errors = append(summary.Errors, fmt.Errorf("merging %s edge %s->%s: %w", edge.Type, edge.FromID, edge.ToID, err))
			continue
		}
		if created {
			summary.RelationshipsCreated++
		} else {
			summary.RelationshipsSkipped++
		}
	}

	return nil
}
