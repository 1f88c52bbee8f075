package domain

import "time"

// Default schedule values applied by Normalize.
const (
	DefaultInjectionDay    = time.Saturday
	DefaultInjectionTime   = "09:51"
	DefaultMeasurementDays = 14
	MinMeasurementDays     = 7
	DefaultReminderTime    = "09:00"
)

// DefaultWeighDays returns the default weigh-in weekdays (Mon/Wed/Fri).
func DefaultWeighDays() []time.Weekday {
	return []time.Weekday{time.Monday, time.Wednesday, time.Friday}
}

// Settings is the single process-wide schedule configuration. Pass it
// through Normalize once at load so downstream code never re-implements
// fallback logic.
type Settings struct {
	WeighDays []time.Weekday `json:"weighDays"`
	// InjectionDay is a pointer so an unset day (nil, defaulted to
	// Saturday) stays distinct from an explicit Sunday, which is weekday
	// zero.
	InjectionDay           *time.Weekday `json:"injectionDay"`
	InjectionTime          string        `json:"injectionTime"`
	MeasurementCadenceDays int           `json:"measurementCadenceDays"`

	// Free-form weekly reminder, independent of the schedule above.
	ReminderDay  *time.Weekday `json:"reminderDay"`
	ReminderTime string        `json:"reminderTime"`

	// Patient metadata, not part of the computational core.
	PatientName    string  `json:"patientName"`
	MedicationName string  `json:"medicationName"`
	TargetWeightKg float64 `json:"targetWeightKg"`
}

// Normalize applies documented defaults field-by-field and clamps weekday
// indices and the cadence. Idempotent; a zero Settings yields the full
// defaults. A nil WeighDays slice means "not configured" and gets the
// default; an explicitly empty set stays empty.
func (s Settings) Normalize() Settings {
	out := s

	if out.WeighDays == nil {
		out.WeighDays = DefaultWeighDays()
	} else {
		days := make([]time.Weekday, 0, len(out.WeighDays))
		seen := map[time.Weekday]bool{}
		for _, d := range out.WeighDays {
			if d < time.Sunday || d > time.Saturday || seen[d] {
				continue
			}
			seen[d] = true
			days = append(days, d)
		}
		out.WeighDays = days
	}

	if out.InjectionDay == nil || *out.InjectionDay < time.Sunday || *out.InjectionDay > time.Saturday {
		day := DefaultInjectionDay
		out.InjectionDay = &day
	}
	if !validClock(out.InjectionTime) {
		out.InjectionTime = DefaultInjectionTime
	}

	if out.MeasurementCadenceDays == 0 {
		out.MeasurementCadenceDays = DefaultMeasurementDays
	}
	if out.MeasurementCadenceDays < MinMeasurementDays {
		out.MeasurementCadenceDays = MinMeasurementDays
	}

	if out.ReminderDay != nil && (*out.ReminderDay < time.Sunday || *out.ReminderDay > time.Saturday) {
		out.ReminderDay = nil
	}
	if !validClock(out.ReminderTime) {
		out.ReminderTime = DefaultReminderTime
	}

	return out
}

// WeighOn reports whether d is a configured weigh-in day.
func (s Settings) WeighOn(d time.Weekday) bool {
	for _, wd := range s.WeighDays {
		if wd == d {
			return true
		}
	}
	return false
}

func validClock(clock string) bool {
	if len(clock) != 5 || clock[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if clock[i] < '0' || clock[i] > '9' {
			return false
		}
	}
	h := int(clock[0]-'0')*10 + int(clock[1]-'0')
	m := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return h <= 23 && m <= 59
}
