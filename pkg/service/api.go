package service

import (
	"errors"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/ranking"
)

var (
	ErrInvalidArea    = errors.New("invalid area")
	ErrInvalidRequest = errors.New("invalid request")
)

type (
	LockCrownRequest struct {
		CarID    int64      `json:"carId"`
		Area     model.Area `json:"area"`
		LockTime int64      `json:"lockTime"`
	}

	SaveGameResultRequest struct {
		CarID    int64                  `json:"carId"`
		Area     model.Area             `json:"area"`
		Opponent model.OpponentSnapshot `json:"opponent"`
		Result   bool                   `json:"result"`
		PlayedAt int64                  `json:"playedAt"`
		ShopName string                 `json:"shopName"`
	}

	SaveGameResultResult struct {
		CrownBattle bool `json:"crownBattle"`
		TookCrown   bool `json:"tookCrown"`
		// GhostSessionID is handed to the cabinet when a trail upload
		// should follow; 0 means no trail is expected.
		GhostSessionID int `json:"ghostSessionId,omitempty"`
	}

	SaveGhostTrailRequest struct {
		CarID    int64             `json:"carId"`
		Area     model.Area        `json:"area"`
		Ramp     int               `json:"ramp"`
		Trail    []byte            `json:"trail"`
		PlayedAt int64             `json:"playedAt"`
		Car      model.CarSnapshot `json:"car"`
	}

	SaveGhostTrailResult struct {
		CrownBattle bool `json:"crownBattle"`
	}

	GhostBattleInfoResult struct {
		HasHistory bool `json:"hasHistory"`
	}

	CrownGhostResult struct {
		HasHistory bool               `json:"hasHistory"`
		Holder     *model.CrownHolder `json:"holder,omitempty"`
		Trail      *model.GhostTrail  `json:"trail,omitempty"`
	}

	GhostSummaryEntry struct {
		CarID    int64             `json:"carId"`
		Area     model.Area        `json:"area"`
		Ramp     int               `json:"ramp"`
		PlayedAt int64             `json:"playedAt"`
		Car      model.CarSnapshot `json:"car"`
	}

	CrownListEntry struct {
		Area     model.Area `json:"area"`
		CarID    int64      `json:"carId"`
		HasTrail bool       `json:"hasTrail"`
	}

	TimeAttackHistoryEntry struct {
		Course       model.Course `json:"course"`
		LapTime      int          `json:"lapTime"`
		TunePower    int          `json:"tunePower"`
		TuneHandling int          `json:"tuneHandling"`
		Rank         ranking.RankInfo
	}

	GameHistoryResult struct {
		TimeAttackRecords []TimeAttackHistoryEntry `json:"taRecords"`
		RankingUpdatedAt  int64                    `json:"taRankingUpdatedAt"`
		BattleStats       model.BattleStats        `json:"battleStats"`
		Battles           []*model.BattleRecord    `json:"battles"`
	}
)

func (r *LockCrownRequest) validate() error {
	if r.CarID <= 0 {
		return ErrInvalidRequest
	}
	if !r.Area.Valid() {
		return ErrInvalidArea
	}
	return nil
}

func (r *SaveGameResultRequest) validate() error {
	if r.CarID <= 0 || r.Opponent.CarID <= 0 {
		return ErrInvalidRequest
	}
	if !r.Area.Valid() {
		return ErrInvalidArea
	}
	return nil
}

func (r *SaveGhostTrailRequest) validate() error {
	if r.CarID <= 0 || len(r.Trail) == 0 {
		return ErrInvalidRequest
	}
	if !r.Area.Valid() {
		return ErrInvalidArea
	}
	return nil
}
