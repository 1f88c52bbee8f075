package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// ExportService writes record history as CSV for sharing with a clinician.
type ExportService struct {
	stores Stores
}

// NewExportService creates an ExportService over the given stores.
func NewExportService(stores Stores) *ExportService {
	return &ExportService{stores: stores}
}

// WriteCSV streams the named record kind to w, oldest row first.
func (s *ExportService) WriteCSV(ctx context.Context, kind domain.RecordKind, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	switch kind {
	case domain.KindInjection:
		return s.writeInjections(ctx, cw)
	case domain.KindWeight:
		return s.writeWeights(ctx, cw)
	case domain.KindMeasurement:
		return s.writeMeasurements(ctx, cw)
	}
	return fmt.Errorf("unknown export kind %q", kind)
}

func (s *ExportService) writeInjections(ctx context.Context, cw *csv.Writer) error {
	records, err := s.stores.Injections.ListInjections(ctx)
	if err != nil {
		return err
	}
	header := []string{"date", "time", "medication", "doseMg", "site"}
	header = append(header, domain.SymptomKeys...)
	header = append(header, "notes")
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		lt := r.Timestamp.In(time.Local)
		row := []string{
			dateutil.DayKey(r.Timestamp),
			lt.Format("15:04"),
			r.MedicationName,
			formatFloat(r.DoseMg),
			string(r.Site),
		}
		for _, key := range domain.SymptomKeys {
			row = append(row, strconv.Itoa(r.Symptoms[key]))
		}
		row = append(row, r.Notes)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) writeWeights(ctx context.Context, cw *csv.Writer) error {
	records, err := s.stores.Weights.ListWeights(ctx)
	if err != nil {
		return err
	}
	if err := cw.Write([]string{"date", "time", "weightKg", "fasting", "notes"}); err != nil {
		return err
	}
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		lt := r.Timestamp.In(time.Local)
		row := []string{
			dateutil.DayKey(r.Timestamp),
			lt.Format("15:04"),
			formatFloat(r.WeightKg),
			strconv.FormatBool(r.Fasting),
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) writeMeasurements(ctx context.Context, cw *csv.Writer) error {
	records, err := s.stores.Measurements.ListMeasurements(ctx)
	if err != nil {
		return err
	}
	header := append([]string{"date"}, domain.MeasurementFields...)
	header = append(header, "notes")
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		row := []string{r.Day}
		for _, field := range domain.MeasurementFields {
			if v := r.FieldValue(field); v != nil {
				row = append(row, formatFloat(*v))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, r.Notes)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
