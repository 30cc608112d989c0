package store

type DatasetInput struct {
	ID   string
	Name string
}

type EntryInput struct {
	ID             string
	Name           string
	EntryType      string
	Formula        string
	GroupKey       string
	DatasetID      string
	TotalFiles     int
	HasInputFiles  bool
	HasOutputFiles bool
	HasScripts     bool
}

type RelationshipInput struct {
	FromID     string
	ToID       string
	Type       string
	Confidence float64
	Reasoning  string
	Provenance string
	RunID      string
}

type RelationshipRecord struct {
	FromID     string
	ToID       string
	Type       string
	Confidence float64
	Reasoning  string
	Provenance string
	RunID      string
	Direction  string
}

type FormulaCount struct {
	Formula string
	Count   int64
}

type GraphSummary struct {
	Datasets          int64
	Entries           int64
	Relationships     int64
	RelationshipTypes map[string]int64
	EntryTypes        map[string]int64
}
