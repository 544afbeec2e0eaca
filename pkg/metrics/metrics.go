package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BattlesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bayshore_battles_recorded_total",
		Help: "Battles appended to the ledger.",
	}, []string{"crown_battle"})

	CrownTransfers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bayshore_crown_transfers_total",
		Help: "Crown transfers caused by won contests.",
	})

	TrailsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bayshore_ghost_trails_saved_total",
		Help: "Ghost trail captures stored (replacing the prior one).",
	}, []string{"crown_battle"})
)

// Label value helper for the crown_battle label.
func CrownLabel(crownBattle bool) string {
	if crownBattle {
		return "true"
	}
	return "false"
}
