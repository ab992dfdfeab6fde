package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes recorded on songLookups.
const (
	lookupResolved   = "resolved"
	lookupUnresolved = "unresolved"
	lookupFailed     = "failed"
)

var (
	dedicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dedications_submitted_total",
		Help: "Dedications accepted and stored.",
	})

	dedicationsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dedications_rejected_total",
		Help: "Submissions rejected by validation.",
	})

	dedicationsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dedications_deleted_total",
		Help: "Dedications removed from the wall.",
	})

	songLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dedication_song_lookups_total",
		Help: "Song metadata lookups by outcome.",
	}, []string{"result"})
)
