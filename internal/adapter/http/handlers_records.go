package adapthttp

import (
	"errors"
	"net/http"
	"strings"

	"medtrack/internal/app"
	"medtrack/internal/domain"
)

// isValidationError reports whether err is a client mistake rather than a
// store failure.
func isValidationError(err error) bool {
	for _, v := range []error{
		app.ErrInvalidDose, app.ErrInvalidWeight, app.ErrInvalidSite,
		app.ErrInvalidDay, app.ErrInvalidField, app.ErrMissingMedName,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func (s *Server) handleInjections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.records.ListInjections(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPut, http.MethodPost:
		var rec domain.InjectionRecord
		if err := parseJSON(r, &rec); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		saved, err := s.records.SaveInjection(ctx, rec)
		if err != nil {
			status := http.StatusInternalServerError
			if isValidationError(err) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": saved})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleInjectionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/injections/")
	deleted, err := s.records.DeleteInjection(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.records.ListWeights(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPut, http.MethodPost:
		var rec domain.WeightRecord
		if err := parseJSON(r, &rec); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		saved, err := s.records.SaveWeight(ctx, rec)
		if err != nil {
			status := http.StatusInternalServerError
			if isValidationError(err) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": saved})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWeightByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/weights/")
	deleted, err := s.records.DeleteWeight(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleMeasurements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.records.ListMeasurements(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPut, http.MethodPost:
		var rec domain.MeasurementRecord
		if err := parseJSON(r, &rec); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		saved, err := s.records.SaveMeasurement(ctx, rec)
		if err != nil {
			status := http.StatusInternalServerError
			if isValidationError(err) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": saved})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMeasurementByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/measurements/")
	deleted, err := s.records.DeleteMeasurement(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		settings, err := s.records.GetSettings(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"settings": settings})

	case http.MethodPut:
		var settings domain.Settings
		if err := parseJSON(r, &settings); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		saved, err := s.records.SaveSettings(ctx, settings)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"settings": saved})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
