package nomad

// Record is one raw calculation entry as returned by the entries endpoints.
// Only the fields the reconstruction pipeline consumes are decoded.
type Record struct {
	EntryID    string   `json:"entry_id"`
	EntryName  string   `json:"entry_name"`
	Mainfile   string   `json:"mainfile"`
	EntryType  string   `json:"entry_type"`
	UploadID   string   `json:"upload_id"`
	UploadName string   `json:"upload_name"`
	Files      []string `json:"files"`
	Results    Results  `json:"results"`
}

type Results struct {
	Material Material `json:"material"`
}

type Material struct {
	ChemicalFormulaReduced string   `json:"chemical_formula_reduced"`
	Elements               []string `json:"elements"`
}

// Formula returns the reduced chemical formula, which may be empty.
func (r Record) Formula() string {
	return r.Results.Material.ChemicalFormulaReduced
}

// GroupKey returns the batch identifier used for workflow clustering: the
// upload name when present, the upload id otherwise.
func (r Record) GroupKey() string {
	if r.UploadName != "" {
		return r.UploadName
	}
	return r.UploadID
}

// Retrieval summarises one paginated extraction.
type Retrieval struct {
	TotalEstimated int
	RetrievedCount int
	PagesFetched   int
}

// RecordSet is the accumulated result of a paginated extraction. A set whose
// RetrievedCount is below TotalEstimated is a partial (non-fatal) outcome.
type RecordSet struct {
	Records   []Record
	Retrieval Retrieval
}

// Dataset is one entry of the dataset listing endpoint.
type Dataset struct {
	DatasetID   string `json:"dataset_id"`
	DatasetName string `json:"dataset_name"`
	EntryCount  int    `json:"n_entries"`
}

type pageResponse struct {
	Data       []Record   `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Total              int    `json:"total"`
	NextPageAfterValue string `json:"next_page_after_value"`
}

type datasetsResponse struct {
	Data []Dataset `json:"data"`
}

type entryResponse struct {
	Data struct {
		Files []string `json:"files"`
	} `json:"data"`
}
