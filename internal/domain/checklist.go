package domain

// RecordKind identifies one of the three record kinds.
type RecordKind string

const (
	KindWeight      RecordKind = "weight"
	KindInjection   RecordKind = "injection"
	KindMeasurement RecordKind = "measurement"
)

// ItemStatus is the derived state of a checklist item.
type ItemStatus string

const (
	StatusDone    ItemStatus = "done"
	StatusPending ItemStatus = "pending"
	StatusLate    ItemStatus = "late"
)

// ChecklistItem is one expected action on a calendar day. Derived on
// demand, never persisted.
type ChecklistItem struct {
	Kind            RecordKind `json:"kind"`
	DateKey         string     `json:"dateKey"`
	Required        bool       `json:"required"`
	Done            bool       `json:"done"`
	Status          ItemStatus `json:"status"`
	WarnAfterCutoff bool       `json:"warnAfterCutoff"`
}

// DayChecklist groups the items of a single day for upcoming views.
type DayChecklist struct {
	DateKey string          `json:"dateKey"`
	Items   []ChecklistItem `json:"items"`
}
