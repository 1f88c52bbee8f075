package domain

// Severity grades an insight.
type Severity string

const (
	SeverityOK     Severity = "ok"
	SeverityInfo   Severity = "info"
	SeverityWarn   Severity = "warn"
	SeverityDanger Severity = "danger"
)

// InsightItem is one rule-based observation with a suggested next step.
// Derived on demand, never persisted.
type InsightItem struct {
	Title    string   `json:"title"`
	Insight  string   `json:"insight"`
	Action   string   `json:"action"`
	Severity Severity `json:"severity"`
}
