package searches

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchesRecorded counts results added to a history, split by whether the
	// term was new or a repeat that moved to the front.
	searchesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "searches_recorded",
		Help: "The total number of search results recorded in a history",
	}, []string{"kind"})

	// searchesFailed counts searcher errors.
	searchesFailed = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "searches_failed",
		Help: "The total number of searches that returned an error",
	})

	// searchesDeleted counts rows removed from a history.
	searchesDeleted = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "searches_deleted",
		Help: "The total number of search rows deleted",
	})
)

const (
	kindNew    = "new"
	kindRepeat = "repeat"
)
