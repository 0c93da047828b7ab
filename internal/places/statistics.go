package places

import "github.com/UnknownOlympus/hermes/internal/models"

// Statistics aggregates list in a single pass.
// Only categories present in list get an entry in CategoryCounts.
// When several places share the latest CreatedAt, the first one in list order is reported.
func Statistics(list []models.Place) models.PlaceStatistics {
	stats := models.PlaceStatistics{
		TotalPlaces:    len(list),
		CategoryCounts: make(map[string]int),
	}

	for i := range list {
		place := &list[i]
		if place.Favorite {
			stats.FavoriteCount++
		}
		stats.CategoryCounts[place.Category]++

		if stats.MostRecentPlace == nil || place.CreatedAt.After(stats.MostRecentPlace.CreatedAt) {
			stats.MostRecentPlace = place
		}
	}

	if stats.MostRecentPlace != nil {
		recent := *stats.MostRecentPlace
		stats.MostRecentPlace = &recent
	}

	return stats
}
