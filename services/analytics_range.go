package services

import (
	"time"

	"drivefund/models"
)

var rangeDays = map[models.RangeTag]int{
	models.Range7Days:  7,
	models.Range30Days: 30,
	models.Range90Days: 90,
}

// ResolveRange maps the raw range query values to a supported tag. Tags match
// exactly; absent, repeated, empty, unknown or differently cased values
// resolve to models.DefaultRange.
func ResolveRange(values []string) models.RangeTag {
	if len(values) != 1 {
		return models.DefaultRange
	}

	tag := models.RangeTag(values[0])
	if tag == models.RangeAllTime {
		return tag
	}
	if _, ok := rangeDays[tag]; ok {
		return tag
	}
	return models.DefaultRange
}

// BuildWindow converts a tag into its start boundary relative to now. The
// all-time range has no start.
func BuildWindow(tag models.RangeTag, now time.Time) models.AnalyticsWindow {
	if tag == models.RangeAllTime {
		return models.AnalyticsWindow{Range: tag}
	}

	days, ok := rangeDays[tag]
	if !ok {
		tag, days = models.DefaultRange, rangeDays[models.DefaultRange]
	}

	start := now.UTC().AddDate(0, 0, -days)
	return models.AnalyticsWindow{Range: tag, StartDate: &start}
}
