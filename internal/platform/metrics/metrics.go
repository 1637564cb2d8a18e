package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	FeedersRegistered  prometheus.Counter
	FeedersVerified    prometheus.Counter
	DogsRegistered     prometheus.Counter
	DogHealthUpdates   prometheus.Counter
	DonationsRecorded  prometheus.Counter
	DonationVolume     prometheus.Counter
	ExpensesRecorded   prometheus.Counter
	TreatmentsRecorded prometheus.Counter
	TransferFailures   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		FeedersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_feeders_registered_total",
			Help: "Total number of feeders registered",
		}),
		FeedersVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_feeders_verified_total",
			Help: "Total number of feeders verified by the administrator",
		}),
		DogsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_dogs_registered_total",
			Help: "Total number of dogs registered",
		}),
		DogHealthUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_dog_health_updates_total",
			Help: "Total number of dog health record updates",
		}),
		DonationsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_donations_recorded_total",
			Help: "Total number of donations recorded",
		}),
		DonationVolume: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_donation_volume_total",
			Help: "Cumulative donated amount in token base units",
		}),
		ExpensesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_expenses_recorded_total",
			Help: "Total number of expenses recorded",
		}),
		TreatmentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_treatments_recorded_total",
			Help: "Total number of treatments recorded",
		}),
		TransferFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawledger_transfer_failures_total",
			Help: "Total number of donation transfers that failed to settle",
		}),
	}
}
