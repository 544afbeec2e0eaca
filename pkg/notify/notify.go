// Package notify distributes crown and trail events to interested
// listeners (attract screens, standings displays) on other nodes.
package notify

import (
	"github.com/banahub/bayshore-backend-go/pkg/model"
)

type (
	// CrownTransferredEvent is published after a won contest moved the
	// crown of an area.
	CrownTransferredEvent struct {
		Area          model.Area `json:"area"`
		NewHolder     int64      `json:"newHolder"`
		PrevHolder    int64      `json:"prevHolder"` // 0 when the crown was unclaimed
		PlayedAt      int64      `json:"playedAt"`
		DefendedTimes int        `json:"defendedTimes,omitempty"`
	}

	// TrailRecordedEvent is published after a ghost trail capture was
	// stored.
	TrailRecordedEvent struct {
		CarID       int64      `json:"carId"`
		Area        model.Area `json:"area"`
		CrownBattle bool       `json:"crownBattle"`
		PlayedAt    int64      `json:"playedAt"`
	}

	// Publisher delivers events after the owning transaction committed.
	// Implementations must not block the request path on delivery.
	Publisher interface {
		PublishCrownTransferred(ev *CrownTransferredEvent) error
		PublishTrailRecorded(ev *TrailRecordedEvent) error
		Close()
	}
)
