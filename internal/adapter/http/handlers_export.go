package adapthttp

import (
	"fmt"
	"net/http"
	"time"

	"medtrack/internal/domain"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	kind := domain.RecordKind(r.URL.Query().Get("kind"))
	switch kind {
	case domain.KindInjection, domain.KindWeight, domain.KindMeasurement:
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown export kind %q", kind))
		return
	}

	filename := fmt.Sprintf("medtrack-%s-%s.csv", kind, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := s.export.WriteCSV(r.Context(), kind, w); err != nil {
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		filename := fmt.Sprintf("medtrack-backup-%s.json", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := s.backup.Dump(ctx, w); err != nil {
			writeError(w, http.StatusInternalServerError, err)
		}

	case http.MethodPost:
		restored, err := s.backup.Restore(ctx, r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "restored": restored})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
