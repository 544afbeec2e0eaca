package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/banahub/bayshore-backend-go/log"
	"github.com/banahub/bayshore-backend-go/pkg/metrics"
	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/notify"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
	"github.com/banahub/bayshore-backend-go/pkg/repository/battleledger"
	"github.com/banahub/bayshore-backend-go/pkg/repository/contestlock"
	"github.com/banahub/bayshore-backend-go/pkg/repository/crown"
	"github.com/banahub/bayshore-backend-go/pkg/repository/ghosttrail"
)

type (
	GhostService struct {
		pool         *pgxpool.Pool
		publisher    notify.Publisher
		l            *log.Logger
		staleLockAge time.Duration
		summaryLimit int
	}
	GhostServiceOption func(*GhostService)
)

func WithGhostPublisher(p notify.Publisher) GhostServiceOption {
	return func(s *GhostService) {
		s.publisher = p
	}
}

func WithGhostStaleLockAge(age time.Duration) GhostServiceOption {
	return func(s *GhostService) {
		s.staleLockAge = age
	}
}

func WithSummaryLimit(limit int) GhostServiceOption {
	return func(s *GhostService) {
		s.summaryLimit = limit
	}
}

func InitGhostService(pool *pgxpool.Pool, opts ...GhostServiceOption) *GhostService {
	ret := &GhostService{
		pool:         pool,
		publisher:    notify.NewLocalPublisher(),
		l:            log.Default().Named("service.ghost"),
		summaryLimit: 50,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// SaveGhostTrail stores a trail capture, replacing the prior live trail
// for (carId, area, contestFlag). The contest flag is derived from the
// presence of a live contest lock; the lock itself is left untouched, it
// is consumed by the save-result path.
func (s *GhostService) SaveGhostTrail(
	ctx context.Context,
	req *SaveGhostTrailRequest,
) (*SaveGhostTrailResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ret := &SaveGhostTrailResult{}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		crownBattle, err := contestlock.ResolveFresh(
			ctx, tx, req.CarID, req.Area, s.staleLockAge)
		if err != nil {
			return err
		}
		ret.CrownBattle = crownBattle

		trail := &model.GhostTrail{
			CarID:       req.CarID,
			Area:        req.Area,
			CrownBattle: crownBattle,
			Ramp:        req.Ramp,
			Trail:       req.Trail,
			PlayedAt:    req.PlayedAt,
			Car:         req.Car,
		}
		return ghosttrail.Save(ctx, tx, trail)
	})
	if err != nil {
		s.l.Error("save ghost trail failed",
			log.Int64("carId", req.CarID),
			log.Any("area", req.Area),
			log.ErrorField(err))
		return nil, err
	}

	metrics.TrailsSaved.
		WithLabelValues(metrics.CrownLabel(ret.CrownBattle)).Inc()
	ev := &notify.TrailRecordedEvent{
		CarID:       req.CarID,
		Area:        req.Area,
		CrownBattle: ret.CrownBattle,
		PlayedAt:    req.PlayedAt,
	}
	if err := s.publisher.PublishTrailRecorded(ev); err != nil {
		s.l.Warn("trail event not delivered", log.ErrorField(err))
	}
	return ret, nil
}

// LoadCrownGhost returns the area's champion and their latest crown
// trail. An unclaimed crown or a champion without a stored trail yields
// hasHistory=false rather than an error.
func (s *GhostService) LoadCrownGhost(ctx context.Context, area model.Area) (
	*CrownGhostResult, error,
) {
	if !area.Valid() {
		return nil, ErrInvalidArea
	}
	ret := &CrownGhostResult{}
	err := s.pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		holder, err := crown.Holder(ctx, c.Conn(), area)
		if err != nil {
			if errors.Is(err, repository.ErrNoData) {
				return nil
			}
			return err
		}
		trail, err := ghosttrail.LatestForHolder(ctx, c.Conn(), area)
		if err != nil {
			if errors.Is(err, repository.ErrNoData) {
				return nil
			}
			return err
		}
		ret.HasHistory = true
		ret.Holder = holder
		ret.Trail = trail
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// LoadGhostBattleInfo reports whether the car played any normal (non
// contest) ghost battle before.
func (s *GhostService) LoadGhostBattleInfo(ctx context.Context, carID int64) (
	*GhostBattleInfoResult, error,
) {
	ret := &GhostBattleInfoResult{}
	err := s.pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		has, err := battleledger.HasHistory(ctx, c.Conn(), carID)
		if err != nil {
			return err
		}
		ret.HasHistory = has
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// GhostSummary lists recent normal trails with their vehicle snapshots.
// area restricts the listing when non-nil.
func (s *GhostService) GhostSummary(ctx context.Context, area *model.Area) (
	[]GhostSummaryEntry, error,
) {
	if area != nil && !area.Valid() {
		return nil, ErrInvalidArea
	}
	var trails []*model.GhostTrail
	err := s.pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		var err error
		trails, err = ghosttrail.Recent(ctx, c.Conn(), false, s.summaryLimit, area)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(trails, func(t *model.GhostTrail, _ int) GhostSummaryEntry {
		return GhostSummaryEntry{
			CarID:    t.CarID,
			Area:     t.Area,
			Ramp:     t.Ramp,
			PlayedAt: t.PlayedAt,
			Car:      t.Car,
		}
	}), nil
}
