// Package domain holds the core entities and repository ports.
package domain

import (
	"context"
	"time"
)

// InjectionSite is a body location for an injection.
type InjectionSite string

const (
	SiteAbdomen    InjectionSite = "abdomen"
	SiteThighLeft  InjectionSite = "thigh-left"
	SiteThighRight InjectionSite = "thigh-right"
	SiteArmLeft    InjectionSite = "arm-left"
	SiteArmRight   InjectionSite = "arm-right"
	SiteButtock    InjectionSite = "buttock"
)

// ValidSite reports whether s is one of the known injection sites.
func ValidSite(s InjectionSite) bool {
	switch s {
	case SiteAbdomen, SiteThighLeft, SiteThighRight, SiteArmLeft, SiteArmRight, SiteButtock:
		return true
	}
	return false
}

// SymptomKeys are the fixed symptom scores tracked per injection, scored
// 0-10. Order matters: insight rules report the first matching key.
var SymptomKeys = []string{"nausea", "fatigue", "headache", "constipation", "dizziness"}

// InjectionRecord is a single administered dose.
type InjectionRecord struct {
	ID             string         `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	MedicationName string         `json:"medicationName"`
	DoseMg         float64        `json:"doseMg"`
	Site           InjectionSite  `json:"site"`
	Symptoms       map[string]int `json:"symptoms"`
	Notes          string         `json:"notes"`
}

// WeightRecord is a single weigh-in.
type WeightRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	WeightKg  float64   `json:"weightKg"`
	Fasting   bool      `json:"fasting"`
	Notes     string    `json:"notes"`
}

// MeasurementRecord holds body measurements for one calendar day. Each field
// is optional; nil means not measured, which is distinct from zero.
type MeasurementRecord struct {
	ID           string   `json:"id"`
	Day          string   `json:"day"`
	NeckCm       *float64 `json:"neckCm"`
	ChestCm      *float64 `json:"chestCm"`
	WaistCm      *float64 `json:"waistCm"`
	HipsCm       *float64 `json:"hipsCm"`
	ArmLeftCm    *float64 `json:"armLeftCm"`
	ArmRightCm   *float64 `json:"armRightCm"`
	ThighLeftCm  *float64 `json:"thighLeftCm"`
	ThighRightCm *float64 `json:"thighRightCm"`
	Notes        string   `json:"notes"`
}

// MeasurementFields names the optional measurement fields in display order.
var MeasurementFields = []string{
	"neckCm", "chestCm", "waistCm", "hipsCm",
	"armLeftCm", "armRightCm", "thighLeftCm", "thighRightCm",
}

// FieldValue returns the named measurement field, or nil when absent.
func (m MeasurementRecord) FieldValue(field string) *float64 {
	switch field {
	case "neckCm":
		return m.NeckCm
	case "chestCm":
		return m.ChestCm
	case "waistCm":
		return m.WaistCm
	case "hipsCm":
		return m.HipsCm
	case "armLeftCm":
		return m.ArmLeftCm
	case "armRightCm":
		return m.ArmRightCm
	case "thighLeftCm":
		return m.ThighLeftCm
	case "thighRightCm":
		return m.ThighRightCm
	}
	return nil
}

// InjectionRepository is the port for injection persistence.
type InjectionRepository interface {
	ListInjections(ctx context.Context) ([]InjectionRecord, error)
	UpsertInjection(ctx context.Context, rec InjectionRecord) error
	DeleteInjection(ctx context.Context, id string) (bool, error)
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	ListWeights(ctx context.Context) ([]WeightRecord, error)
	UpsertWeight(ctx context.Context, rec WeightRecord) error
	DeleteWeight(ctx context.Context, id string) (bool, error)
}

// MeasurementRepository is the port for measurement persistence.
type MeasurementRepository interface {
	ListMeasurements(ctx context.Context) ([]MeasurementRecord, error)
	UpsertMeasurement(ctx context.Context, rec MeasurementRecord) error
	DeleteMeasurement(ctx context.Context, id string) (bool, error)
}

// SettingsRepository is the port for the single settings row.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}
