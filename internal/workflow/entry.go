package workflow

import (
	"errors"
	"strings"

	"nomadgraph/internal/nomad"
)

// Entry is one normalized calculation record. Entries are created once
// during normalization and never mutated afterwards; everything downstream
// of the extractor operates on Entry values only.
type Entry struct {
	ID        string
	Name      string
	Formula   string
	EntryType string
	GroupKey  string
	Files     FileSummary
}

// FileSummary is a coarse classification of an entry's raw files, derived
// from filename extensions only.
type FileSummary struct {
	TotalFiles    int
	InputFiles    int
	OutputFiles   int
	ScriptFiles   int
	ConfigFiles   int
	DataFiles     int
	HasInputFiles bool
	HasOutput     bool
	HasScripts    bool
}

// ErrMissingEntryID marks a raw record that cannot be normalized. The caller
// skips the record and continues.
var ErrMissingEntryID = errors.New("record missing entry_id")

var (
	inputExtensions  = []string{".in", ".inp", ".input"}
	outputExtensions = []string{".out", ".output", ".log"}
	scriptExtensions = []string{".py", ".sh", ".slurm", ".pbs", ".job"}
	configExtensions = []string{".json", ".yaml", ".yml", ".xml", ".cfg", ".conf"}
	dataExtensions   = []string{".csv", ".dat", ".txt", ".hdf5", ".h5"}
)

// Normalize maps a raw remote record to an Entry. The entry type falls back
// to a keyword guess from the mainfile name when the service supplies none.
func Normalize(record nomad.Record) (Entry, error) {
	if strings.TrimSpace(record.EntryID) == "" {
		return Entry{}, ErrMissingEntryID
	}

	name := record.EntryName
	if name == "" {
		name = record.Mainfile
	}

	entryType := record.EntryType
	if entryType == "" {
		entryType = guessEntryType(record.Mainfile)
	}

	return Entry{
		ID:        record.EntryID,
		Name:      name,
		Formula:   record.Formula(),
		EntryType: entryType,
		GroupKey:  record.GroupKey(),
		Files:     SummarizeFiles(record.Files),
	}, nil
}

// SummarizeFiles classifies file paths into workflow-role buckets by
// extension pattern, without inspecting content.
func SummarizeFiles(paths []string) FileSummary {
	summary := FileSummary{TotalFiles: len(paths)}
	for _, path := range paths {
		lower := strings.ToLower(path)
		switch {
		case hasAnySuffix(lower, inputExtensions):
			summary.InputFiles++
		case hasAnySuffix(lower, outputExtensions):
			summary.OutputFiles++
		case hasAnySuffix(lower, scriptExtensions):
			summary.ScriptFiles++
		case hasAnySuffix(lower, configExtensions):
			summary.ConfigFiles++
		case hasAnySuffix(lower, dataExtensions):
			summary.DataFiles++
		}
	}
	summary.HasInputFiles = summary.InputFiles > 0
	summary.HasOutput = summary.OutputFiles > 0
	summary.HasScripts = summary.ScriptFiles > 0
	return summary
}

func hasAnySuffix(path string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func guessEntryType(mainfile string) string {
	lower := strings.ToLower(mainfile)
	switch {
	case strings.Contains(lower, "relax") || strings.Contains(lower, "opt"):
		return "geometry_optimization"
	case strings.Contains(lower, "scf"):
		return "scf"
	case strings.Contains(lower, "band"):
		return "band_structure"
	case strings.Contains(lower, "dos"):
		return "dos"
	default:
		return ""
	}
}

// GroupByKey splits entries into groups sharing one group key, preserving
// input order within each group. Entries without a group key are collected
// under the empty key.
func GroupByKey(entries []Entry) map[string][]Entry {
	groups := make(map[string][]Entry)
	for _, entry := range entries {
		groups[entry.GroupKey] = append(groups[entry.GroupKey], entry)
	}
	return groups
}
