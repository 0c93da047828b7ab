package metrics

import (
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PlaceOperations  *prometheus.CounterVec
	StoreSeconds     *prometheus.HistogramVec
	GeocodeSeconds   *prometheus.HistogramVec
	GeocodeErrors    prometheus.Counter
	ActiveTasks      prometheus.Gauge
	PlacesTotal      prometheus.Gauge
	FavoritesTotal   prometheus.Gauge
	PlacesByCategory *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		PlaceOperations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_place_operations_total",
			Help: "Total number of place mutations requested by users.",
		}, []string{"operation", "status"}),
		StoreSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hermes_store_operation_duration_seconds",
			Help:    "Duration of place store operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hermes_geocoding_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodeErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hermes_geocoding_errors_total",
			Help: "Total number of failed address lookups.",
		}),
		ActiveTasks: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hermes_active_tasks",
			Help: "Current number of in-flight place mutation tasks.",
		}),
		PlacesTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hermes_places",
			Help: "Number of stored places.",
		}),
		FavoritesTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hermes_favorite_places",
			Help: "Number of places marked as favorite.",
		}),
		PlacesByCategory: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "hermes_places_by_category",
			Help: "Number of stored places per category.",
		}, []string{"category"}),
	}
}

// RecordStatistics mirrors a statistics snapshot into the gauges.
// Categories that disappeared from the snapshot are dropped.
func (m *Metrics) RecordStatistics(stats models.PlaceStatistics) {
	m.PlacesTotal.Set(float64(stats.TotalPlaces))
	m.FavoritesTotal.Set(float64(stats.FavoriteCount))

	m.PlacesByCategory.Reset()
	for category, count := range stats.CategoryCounts {
		m.PlacesByCategory.WithLabelValues(category).Set(float64(count))
	}
}
