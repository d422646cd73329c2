package ingest

import (
	"ratecal/pkg/contracts/domain"
)

// Aggregate builds the per-day aggregate from parsed rating events.
// Each distinct date gets exactly one entry; dates with no events are absent
// rather than zero-valued, so the renderer can tell "no data" from zero.
// The result does not depend on input order.
func Aggregate(events []domain.RatingEvent) domain.DailyAggregate {
	agg := make(domain.DailyAggregate, len(events))

	for _, event := range events {
		key := domain.DateKey(event.Date)
		value := agg[key]
		value.Count++
		if event.HasRating {
			value.Sum += event.Rating
		}
		agg[key] = value
	}

	return agg
}
