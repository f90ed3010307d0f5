package authlog

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Rizwan2611/CLV-calculator/internal/ids"
)

// csvHeader is the fixed 15-column export layout.
var csvHeader = []string{
	"UserId", "Email", "DisplayName", "EventType", "Provider",
	"Timestamp", "SessionId", "UserAgent", "Platform", "DeviceType",
	"BrowserName", "IPAddress", "CurrentUrl", "IsNewUser", "TimestampUnix",
}

// ExportCSV writes every stored record to w, one row per record, and
// returns the number of data rows written. Fields containing the delimiter
// or quote character are quote-escaped by the encoder.
func (s *Store) ExportCSV(w io.Writer) (int, error) {
	events := s.all()

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, e := range events {
		row := []string{
			e.UserID, e.Email, e.DisplayName, e.EventType, e.Provider,
			e.Timestamp, e.SessionID, e.UserAgent, e.Platform, e.DeviceType,
			e.BrowserName, e.IPAddress, e.CurrentURL,
			strconv.FormatBool(e.IsNewUser),
			strconv.FormatInt(e.TimestampUnix, 10),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(events), nil
}

// ExportCSVFile writes the export to a timestamped file under dir and
// returns the bare filename.
func (s *Store) ExportCSVFile(dir string) (string, error) {
	name := "auth_export_" + ids.New() + ".csv"

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	if _, err := s.ExportCSV(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}
