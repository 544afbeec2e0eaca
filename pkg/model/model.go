package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// CrownHolder is the current champion of an area. At most one row per
// area exists; absence means the crown is unclaimed.
type CrownHolder struct {
	Area      Area      `json:"area"`
	CarID     int64     `json:"carId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContestLock marks that a car has committed to contesting an area's
// crown. It is consulted by the save-result/save-trail paths and deleted
// once a result is resolved.
type ContestLock struct {
	ID        int64     `json:"id"`
	CarID     int64     `json:"carId"`
	Area      Area      `json:"area"`
	Status    string    `json:"status"`
	LockTime  int64     `json:"lockTime"`
	CreatedAt time.Time `json:"createdAt"`
}

const LockStatusLocked = "locked"

// CarSnapshot is the vehicle descriptor captured alongside a trail. It is
// handed to future challengers as the opponent description; the car store
// itself is maintained elsewhere.
type CarSnapshot struct {
	Name         string `json:"name"`
	Model        int    `json:"model"`
	TunePower    int    `json:"tunePower"`
	TuneHandling int    `json:"tuneHandling"`
}

// GhostTrail is a recorded driving path. At most one live trail exists
// per (carId, area, crownBattle) triple; saving replaces the prior row.
type GhostTrail struct {
	ID          uuid.UUID   `json:"id"`
	CarID       int64       `json:"carId"`
	Area        Area        `json:"area"`
	CrownBattle bool        `json:"crownBattle"`
	Ramp        int         `json:"ramp"`
	Trail       []byte      `json:"trail"`
	PlayedAt    int64       `json:"playedAt"`
	Car         CarSnapshot `json:"car"`
}

// OpponentSnapshot describes the opponent of a played battle as reported
// by the caller.
type OpponentSnapshot struct {
	CarID        int64 `json:"carId"`
	TunePower    int   `json:"tunePower"`
	TuneHandling int   `json:"tuneHandling"`
}

// BattleRecord is one played battle. Rows are append-only; no update or
// delete is ever issued.
type BattleRecord struct {
	ID          int64            `json:"id"`
	CarID       int64            `json:"carId"`
	Opponent    OpponentSnapshot `json:"opponent"`
	Area        Area             `json:"area"`
	Result      bool             `json:"result"`
	CrownBattle bool             `json:"crownBattle"`
	PlayedAt    int64            `json:"playedAt"`
	ShopName    string           `json:"shopName"`
}

// BattleStats aggregates non-contest battles for profile statistics.
type BattleStats struct {
	Count int `json:"count"`
	Wins  int `json:"wins"`
}

// TimeAttackRecord is one car's best lap on a course. Maintained by the
// time attack collaborator, consumed read-only by the ranking engine.
type TimeAttackRecord struct {
	CarID        int64     `json:"carId"`
	Course       Course    `json:"course"`
	Model        int       `json:"model"`
	LapTime      int       `json:"lapTime"` // milliseconds
	TunePower    int       `json:"tunePower"`
	TuneHandling int       `json:"tuneHandling"`
	RecordedAt   time.Time `json:"recordedAt"`
}
