// Package ranking computes the competitive position of a time attack
// record among all records of a course and among records of the same
// vehicle model.
package ranking

import (
	"context"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
	"github.com/banahub/bayshore-backend-go/pkg/repository/timeattack"
)

// RankInfo is the rank of one record. Ranks are 1-based; a car without a
// record on the course keeps rank participants+1 by construction of the
// scan, callers should not request ranks for unknown cars.
type RankInfo struct {
	OverallRank         int `json:"overallRank"`
	OverallParticipants int `json:"overallParticipants"`
	ModelRank           int `json:"modelRank"`
	ModelParticipants   int `json:"modelParticipants"`
}

// Position scans records (already sorted best lap first) and returns the
// 1-based position of carID: the count of leading rows belonging to other
// cars plus one. Ties are decided by the ordering of the input sequence.
func Position(records []*model.TimeAttackRecord, carID int64) int {
	rank := 1
	for _, rec := range records {
		if rec.CarID == carID {
			break
		}
		rank++
	}
	return rank
}

// ForRecord computes overall and same-model rank for one record. Each
// call rescans the course; O(n) per record as the leaderboards are small.
func ForRecord(
	ctx context.Context,
	conn repository.Querier,
	rec *model.TimeAttackRecord,
) (*RankInfo, error) {
	overall, err := timeattack.LoadByCourse(ctx, conn, rec.Course)
	if err != nil {
		return nil, err
	}
	scoped, err := timeattack.LoadByCourseAndModel(ctx, conn, rec.Course, rec.Model)
	if err != nil {
		return nil, err
	}
	return &RankInfo{
		OverallRank:         Position(overall, rec.CarID),
		OverallParticipants: len(overall),
		ModelRank:           Position(scoped, rec.CarID),
		ModelParticipants:   len(scoped),
	}, nil
}
