package store

import "context"

// Store is the persistence contract shared by the bolt and postgres
// backends. Node writes are idempotent upserts keyed by natural identifier.
// Edge writes come in two flavours: CreateRelationship is additive and may
// produce store-level duplicates across runs, MergeRelationship writes only
// when no edge with the same (from, to, type) triple exists.
//
// A Store value is reused sequentially across all writes of one
// reconstruction run and is not safe for concurrent runs.
type Store interface {
	Close(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error

	UpsertDataset(ctx context.Context, d DatasetInput) error
	UpsertEntry(ctx context.Context, e EntryInput) error
	CreateRelationship(ctx context.Context, r RelationshipInput) error
	MergeRelationship(ctx context.Context, r RelationshipInput) (bool, error)

	ClearDataset(ctx context.Context, datasetID string) (int64, error)
	ClearAll(ctx context.Context) (int64, error)

	Summary(ctx context.Context) (*GraphSummary, error)
	FormulaCounts(ctx context.Context, limit int) ([]FormulaCount, error)
	EntryRelationships(ctx context.Context, entryID string) ([]RelationshipRecord, error)
}
