package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Rizwan2611/CLV-calculator/internal/authlog"
)

func (a *API) logAuth(w http.ResponseWriter, r *http.Request) {
	// Lenient ingestion: a malformed body degrades to an empty record
	// rather than aborting the append. The server overwrites ipAddress
	// and fills the timestamps regardless.
	var e authlog.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		e = authlog.Event{}
	}

	if _, err := a.events.Append(r.Context(), e, clientIP(r, a.cfg.TrustProxyHeaders)); err != nil {
		writeEnvelope(w, errorEnvelope("Failed to log authentication event"))
		return
	}
	writeEnvelope(w, map[string]any{
		"status":  "success",
		"message": "Authentication event logged successfully",
	})
}

func (a *API) authStats(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, map[string]any{
		"status":         "success",
		"authStatistics": a.events.Statistics(),
	})
}

func (a *API) authLogs(w http.ResponseWriter, r *http.Request) {
	recent := a.events.Recent(a.cfg.RecentLimit)
	if recent == nil {
		recent = []authlog.Event{}
	}
	writeEnvelope(w, map[string]any{
		"status":      "success",
		"authLogs":    recent,
		"totalEvents": len(recent),
	})
}

func (a *API) authExport(w http.ResponseWriter, r *http.Request) {
	filename, err := a.events.ExportCSVFile(a.cfg.ExportDir)
	if err != nil {
		writeEnvelope(w, errorEnvelope("Failed to export authentication logs"))
		return
	}
	writeEnvelope(w, map[string]any{
		"status":   "success",
		"message":  "Authentication logs exported successfully",
		"filename": filename,
	})
}
