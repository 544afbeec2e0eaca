package basedata

import (
	"time"

	"github.com/banahub/bayshore-backend-go/pkg/model"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2026-04-28T11:10:12Z")
	return t
}

func SampleCar() model.CarSnapshot {
	return model.CarSnapshot{
		Name:         "testcar",
		Model:        3,
		TunePower:    16,
		TuneHandling: 18,
	}
}

func SampleTrail(carID int64, area model.Area, crownBattle bool) *model.GhostTrail {
	return &model.GhostTrail{
		CarID:       carID,
		Area:        area,
		CrownBattle: crownBattle,
		Ramp:        4,
		Trail:       []byte{0x01, 0x02, 0x03, 0x04},
		PlayedAt:    TestTime().Unix(),
		Car:         SampleCar(),
	}
}

func SampleBattle(carID int64, area model.Area, result bool) *model.BattleRecord {
	return &model.BattleRecord{
		CarID:       carID,
		Area:        area,
		CrownBattle: false,
		Result:      result,
		Opponent: model.OpponentSnapshot{
			CarID:        carID + 100,
			TunePower:    10,
			TuneHandling: 12,
		},
		PlayedAt: TestTime().Unix(),
		ShopName: "testshop",
	}
}

func SampleTimeAttack(carID int64, course model.Course, lapTime int) *model.TimeAttackRecord {
	return &model.TimeAttackRecord{
		CarID:        carID,
		Course:       course,
		Model:        3,
		LapTime:      lapTime,
		TunePower:    16,
		TuneHandling: 18,
		RecordedAt:   TestTime(),
	}
}
