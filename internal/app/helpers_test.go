package app_test

import (
	"time"

	"medtrack/internal/app"
	"medtrack/internal/domain"
)

func weightAt(ts time.Time, kg float64) domain.WeightRecord {
	return domain.WeightRecord{ID: "w-" + ts.Format("20060102-1504"), Timestamp: ts, WeightKg: kg}
}

func injectionAt(ts time.Time, symptoms map[string]int) domain.InjectionRecord {
	return domain.InjectionRecord{
		ID:             "i-" + ts.Format("20060102-1504"),
		Timestamp:      ts,
		MedicationName: "semaglutide",
		DoseMg:         0.5,
		Site:           domain.SiteAbdomen,
		Symptoms:       symptoms,
	}
}

func measurementOn(day string, waist float64) domain.MeasurementRecord {
	return domain.MeasurementRecord{ID: "m-" + day, Day: day, WaistCm: &waist}
}

func snapshotWith(settings domain.Settings) app.Snapshot {
	return app.Snapshot{Settings: settings}
}

func defaultSnapshot() app.Snapshot {
	return snapshotWith(domain.Settings{}.Normalize())
}
