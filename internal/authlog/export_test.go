package authlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportCSVRoundTrip(t *testing.T) {
	s := NewStore(nil)
	seedEvents := []Event{
		{UserID: "u1", Email: "a@b.com", EventType: "signup", Provider: "email",
			UserAgent: `Mozilla/5.0 (X11; Linux) "quoted", comma`},
		{UserID: "u2", Email: "c,d@e.com", EventType: "login", Provider: "google",
			DisplayName: `Eve "the admin"`},
	}
	for _, e := range seedEvents {
		if _, err := s.Append(context.Background(), e, "127.0.0.1"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	var buf bytes.Buffer
	n, err := s.ExportCSV(&buf)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows written = %d, want 2", n)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read export: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := "UserId,Email,DisplayName,EventType,Provider,Timestamp,SessionId,UserAgent,Platform,DeviceType,BrowserName,IPAddress,CurrentUrl,IsNewUser,TimestampUnix"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Fatalf("header mismatch:\n got %s\nwant %s", got, wantHeader)
	}
	for i, row := range rows {
		if len(row) != 15 {
			t.Fatalf("row %d has %d fields, want 15", i, len(row))
		}
	}

	// Fields with delimiters and quotes survive the round trip intact.
	if rows[1][7] != seedEvents[0].UserAgent {
		t.Fatalf("userAgent corrupted: %q", rows[1][7])
	}
	if rows[2][1] != "c,d@e.com" {
		t.Fatalf("email corrupted: %q", rows[2][1])
	}
	if rows[2][2] != `Eve "the admin"` {
		t.Fatalf("displayName corrupted: %q", rows[2][2])
	}
}

func TestExportCSVFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(nil)
	if _, err := s.Append(context.Background(), Event{UserID: "u1"}, ""); err != nil {
		t.Fatalf("Append: %v", err)
	}

	name, err := s.ExportCSVFile(dir)
	if err != nil {
		t.Fatalf("ExportCSVFile: %v", err)
	}
	if !strings.HasPrefix(name, "auth_export_") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("unexpected filename: %q", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
}
