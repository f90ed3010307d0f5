package authlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	cumulativeFile = "auth_logs.json"
	schemaVersion  = "1.0.0"
)

// cumulativeDoc is the layout of the cumulative event file.
type cumulativeDoc struct {
	Metadata   cumulativeMeta `json:"metadata"`
	AuthEvents []Event        `json:"authEvents"`
}

type cumulativeMeta struct {
	TotalEvents int    `json:"totalEvents"`
	LastUpdated string `json:"lastUpdated"`
	Version     string `json:"version"`
}

// dailyDoc is the layout of one per-calendar-day partition file.
type dailyDoc struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// FileArchive persists events as JSON files: one cumulative file with a
// metadata header, and one partition file per calendar day holding only
// that day's records.
type FileArchive struct {
	path     string
	dailyDir string
}

// NewFileArchive creates the archive under dataDir, with day partitions in
// dailyDir (relative paths resolve under dataDir).
func NewFileArchive(dataDir, dailyDir string) (*FileArchive, error) {
	if !filepath.IsAbs(dailyDir) {
		dailyDir = filepath.Join(dataDir, dailyDir)
	}
	if err := os.MkdirAll(dailyDir, 0o755); err != nil {
		return nil, err
	}
	return &FileArchive{
		path:     filepath.Join(dataDir, cumulativeFile),
		dailyDir: dailyDir,
	}, nil
}

// Load reads the cumulative file back into memory. A missing file is a
// fresh store, not an error.
func (f *FileArchive) Load() ([]Event, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc cumulativeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.AuthEvents, nil
}

// Append rewrites the cumulative file from the full sequence and merges the
// event into its day partition.
func (f *FileArchive) Append(ctx context.Context, e Event, all []Event) error {
	if err := f.writeCumulative(all); err != nil {
		return err
	}
	return f.appendDaily(e)
}

func (f *FileArchive) writeCumulative(all []Event) error {
	doc := cumulativeDoc{
		Metadata: cumulativeMeta{
			TotalEvents: len(all),
			LastUpdated: time.Now().Format(timestampLayout),
			Version:     schemaVersion,
		},
		AuthEvents: all,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

func (f *FileArchive) appendDaily(e Event) error {
	day := eventDay(e)
	path := filepath.Join(f.dailyDir, "auth_"+day+".json")

	doc := dailyDoc{Date: day}
	if data, err := os.ReadFile(path); err == nil {
		// Corrupt partitions start over rather than blocking the append.
		_ = json.Unmarshal(data, &doc)
		doc.Date = day
	}
	doc.Events = append(doc.Events, e)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// eventDay keys the partition by the record's own date.
func eventDay(e Event) string {
	if e.TimestampUnix > 0 {
		return time.UnixMilli(e.TimestampUnix).Format("2006-01-02")
	}
	return time.Now().Format("2006-01-02")
}
