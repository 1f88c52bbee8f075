package app

import (
	"fmt"
	"time"

	"medtrack/internal/domain"
)

// Thresholds for the local insight rules.
const (
	plateauWindowDays = 14
	plateauMinSamples = 6
	plateauBandKg     = 0.3

	reboundRiseKg   = 1.0
	reboundGap12    = 48 * time.Hour
	reboundGap23    = 72 * time.Hour
	reboundReturnKg = 0.3

	missedWeighInsMin = 2

	highSymptomScore = 7
)

// insightRule is one independent predicate producing zero or one insight.
// Rules never mutate state and are re-evaluated on every request.
type insightRule struct {
	name string
	eval func(snap Snapshot, now time.Time) *domain.InsightItem
}

// insightRules are evaluated in order; order only matters for display.
var insightRules = []insightRule{
	{"plateau", plateauRule},
	{"rebound-oscillation", reboundRule},
	{"missed-weigh-ins", missedWeighInsRule},
	{"schedule-mismatch", scheduleMismatchRule},
	{"recurring-high-symptom", recurringSymptomRule},
}

// ComputeInsights runs every rule against the snapshot. An empty result is
// replaced by a single "no alerts" item so the dashboard always has
// something to render.
func ComputeInsights(snap Snapshot, now time.Time) []domain.InsightItem {
	var items []domain.InsightItem
	for _, rule := range insightRules {
		if item := rule.eval(snap, now); item != nil {
			items = append(items, *item)
		}
	}
	if len(items) == 0 {
		items = append(items, domain.InsightItem{
			Title:    "No alerts",
			Insight:  "Nothing unusual in your recent records.",
			Action:   "Keep following your schedule.",
			Severity: domain.SeverityOK,
		})
	}
	return items
}

// plateauRule fires when at least six weigh-ins in the last 14 days stay
// inside a 0.3 kg band.
func plateauRule(snap Snapshot, now time.Time) *domain.InsightItem {
	window := WeightsWithinDays(snap.Weights, plateauWindowDays, now)
	if len(window) < plateauMinSamples {
		return nil
	}
	min := window[0].WeightKg
	max := window[0].WeightKg
	for _, w := range window[1:] {
		if w.WeightKg < min {
			min = w.WeightKg
		}
		if w.WeightKg > max {
			max = w.WeightKg
		}
	}
	if max-min >= plateauBandKg {
		return nil
	}
	return &domain.InsightItem{
		Title:    "Weight plateau",
		Insight:  fmt.Sprintf("Your weight has stayed within %.1f kg over the last %d days.", max-min, plateauWindowDays),
		Action:   "Review your dose schedule and eating pattern with your clinician.",
		Severity: domain.SeverityWarn,
	}
}

// reboundRule looks for a fast rise that reverts: three consecutive samples
// where the second is >1.0 kg above the first within 48h and the third is
// back within 0.3 kg of the first within a further 72h. That pattern is
// consistent with a transient water-weight swing.
func reboundRule(snap Snapshot, now time.Time) *domain.InsightItem {
	asc := weightsAscending(snap.Weights)
	for i := 0; i+2 < len(asc); i++ {
		s1, s2, s3 := asc[i], asc[i+1], asc[i+2]
		if s2.Timestamp.Sub(s1.Timestamp) > reboundGap12 {
			continue
		}
		if s2.WeightKg-s1.WeightKg <= reboundRiseKg {
			continue
		}
		if s3.Timestamp.Sub(s2.Timestamp) > reboundGap23 {
			continue
		}
		if diff := s3.WeightKg - s1.WeightKg; diff > reboundReturnKg || diff < -reboundReturnKg {
			continue
		}
		return &domain.InsightItem{
			Title:    "Short-lived weight spike",
			Insight:  fmt.Sprintf("A %.1f kg jump on %s reverted within days, which usually means water retention, not fat gain.", s2.WeightKg-s1.WeightKg, s2.Timestamp.Format("Jan 2")),
			Action:   "No action needed; judge progress on the weekly trend.",
			Severity: domain.SeverityInfo,
		}
	}
	return nil
}

// missedWeighInsRule fires when the current week is at least two weigh-ins
// behind its schedule.
func missedWeighInsRule(snap Snapshot, now time.Time) *domain.InsightItem {
	a := AdherenceForWeek(0, snap, now)
	missed := a.ExpectedWeighIns - a.DoneWeighIns
	if missed < missedWeighInsMin {
		return nil
	}
	return &domain.InsightItem{
		Title:    "Missed weigh-ins",
		Insight:  fmt.Sprintf("%d of %d scheduled weigh-ins are still open this week.", missed, a.ExpectedWeighIns),
		Action:   "Step on the scale on your next scheduled morning.",
		Severity: domain.SeverityWarn,
	}
}

// scheduleMismatchRule fires when the most recent injection happened on a
// different weekday than the configured one.
func scheduleMismatchRule(snap Snapshot, now time.Time) *domain.InsightItem {
	asc := injectionsAscending(snap.Injections)
	if len(asc) == 0 {
		return nil
	}
	last := asc[len(asc)-1]
	got := last.Timestamp.In(time.Local).Weekday()
	want := *snap.Settings.InjectionDay
	if got == want {
		return nil
	}
	return &domain.InsightItem{
		Title:    "Injection off schedule",
		Insight:  fmt.Sprintf("Your last injection was on a %s, but your schedule says %s.", got, want),
		Action:   "Return to your usual day, or update the schedule in settings.",
		Severity: domain.SeverityWarn,
	}
}

// recurringSymptomRule fires when the two most recent injections both score
// the same symptom at 7/10 or higher. Only the two most recent matter;
// symptom keys are checked in their fixed order and the first hit wins.
func recurringSymptomRule(snap Snapshot, now time.Time) *domain.InsightItem {
	asc := injectionsAscending(snap.Injections)
	if len(asc) < 2 {
		return nil
	}
	a := asc[len(asc)-1]
	b := asc[len(asc)-2]
	for _, key := range domain.SymptomKeys {
		if a.Symptoms[key] >= highSymptomScore && b.Symptoms[key] >= highSymptomScore {
			return &domain.InsightItem{
				Title:    "Recurring strong symptom",
				Insight:  fmt.Sprintf("Your last two injections both scored %s at %d/10 or higher.", key, highSymptomScore),
				Action:   "Contact your prescriber before the next dose.",
				Severity: domain.SeverityDanger,
			}
		}
	}
	return nil
}
