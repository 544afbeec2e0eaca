package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/banahub/bayshore-backend-go/log"
	"github.com/banahub/bayshore-backend-go/pkg/metrics"
	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/notify"
	"github.com/banahub/bayshore-backend-go/pkg/ranking"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
	"github.com/banahub/bayshore-backend-go/pkg/repository/battleledger"
	"github.com/banahub/bayshore-backend-go/pkg/repository/contestlock"
	"github.com/banahub/bayshore-backend-go/pkg/repository/crown"
	"github.com/banahub/bayshore-backend-go/pkg/repository/timeattack"
)

// ghost session id ranges handed to the cabinet, crown battles use the
// upper range
const (
	normalSessionBase = 1
	crownSessionBase  = 51
	sessionRange      = 50
)

type (
	GameService struct {
		pool         *pgxpool.Pool
		publisher    notify.Publisher
		l            *log.Logger
		staleLockAge time.Duration
		historyLimit int
	}
	GameServiceOption func(*GameService)
)

func WithPublisher(p notify.Publisher) GameServiceOption {
	return func(s *GameService) {
		s.publisher = p
	}
}

// WithStaleLockAge makes save-result ignore contest locks older than age.
// Zero keeps every lock alive until it is consumed.
func WithStaleLockAge(age time.Duration) GameServiceOption {
	return func(s *GameService) {
		s.staleLockAge = age
	}
}

func WithHistoryLimit(limit int) GameServiceOption {
	return func(s *GameService) {
		s.historyLimit = limit
	}
}

func InitGameService(pool *pgxpool.Pool, opts ...GameServiceOption) *GameService {
	ret := &GameService{
		pool:         pool,
		publisher:    notify.NewLocalPublisher(),
		l:            log.Default().Named("service.game"),
		historyLimit: 20,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// SaveGameResult resolves a played battle. When a live contest lock
// exists for (carId, area) the battle counts as a crown contest: a win
// transfers the crown, and the lock is cleared either way. The whole
// sequence runs in one transaction; concurrent challengers serialize on
// the lock row.
func (s *GameService) SaveGameResult(
	ctx context.Context,
	req *SaveGameResultRequest,
) (*SaveGameResultResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ret := &SaveGameResultResult{}
	var prevHolder int64
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		crownBattle, err := contestlock.ResolveFresh(
			ctx, tx, req.CarID, req.Area, s.staleLockAge)
		if err != nil {
			return err
		}
		ret.CrownBattle = crownBattle

		if crownBattle && req.Result {
			holder, err := crown.Holder(ctx, tx, req.Area)
			if err != nil && !errors.Is(err, repository.ErrNoData) {
				return err
			}
			if holder != nil {
				prevHolder = holder.CarID
			}
			if err := crown.Upsert(ctx, tx, req.Area, req.CarID); err != nil {
				return err
			}
			ret.TookCrown = true
		}

		rec := &model.BattleRecord{
			CarID:       req.CarID,
			Opponent:    req.Opponent,
			Area:        req.Area,
			Result:      req.Result,
			CrownBattle: crownBattle,
			PlayedAt:    req.PlayedAt,
			ShopName:    req.ShopName,
		}
		if err := battleledger.Record(ctx, tx, rec); err != nil {
			return err
		}

		if crownBattle {
			// the lock never survives the battle it gated
			if _, err := contestlock.Clear(ctx, tx, req.CarID, req.Area); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.l.Error("save game result failed",
			log.Int64("carId", req.CarID),
			log.Any("area", req.Area),
			log.ErrorField(err))
		return nil, err
	}

	metrics.BattlesRecorded.
		WithLabelValues(metrics.CrownLabel(ret.CrownBattle)).Inc()

	if req.Result {
		// winner is expected to upload a fresh trail
		if ret.CrownBattle {
			ret.GhostSessionID = crownSessionBase + rand.IntN(sessionRange)
		} else {
			ret.GhostSessionID = normalSessionBase + rand.IntN(sessionRange)
		}
	}

	if ret.TookCrown {
		metrics.CrownTransfers.Inc()
		ev := &notify.CrownTransferredEvent{
			Area:       req.Area,
			NewHolder:  req.CarID,
			PrevHolder: prevHolder,
			PlayedAt:   req.PlayedAt,
		}
		if err := s.publisher.PublishCrownTransferred(ev); err != nil {
			// delivery is best effort, the transfer is already committed
			s.l.Warn("crown event not delivered", log.ErrorField(err))
		}
		s.l.Info("crown transferred",
			log.Any("area", req.Area),
			log.Int64("newHolder", req.CarID),
			log.Int64("prevHolder", prevHolder))
	}
	return ret, nil
}

// GameHistory assembles the profile screen data: time attack records with
// their ranks, the non-contest battle aggregate, and recent battles.
func (s *GameService) GameHistory(ctx context.Context, carID int64) (
	*GameHistoryResult, error,
) {
	ret := &GameHistoryResult{
		TimeAttackRecords: []TimeAttackHistoryEntry{},
		RankingUpdatedAt:  time.Now().Unix(),
	}
	err := s.pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		records, err := timeattack.LoadByCar(ctx, c.Conn(), carID)
		if err != nil {
			return err
		}
		for _, rec := range records {
			rank, err := ranking.ForRecord(ctx, c.Conn(), rec)
			if err != nil {
				return err
			}
			ret.TimeAttackRecords = append(ret.TimeAttackRecords,
				TimeAttackHistoryEntry{
					Course:       rec.Course,
					LapTime:      rec.LapTime,
					TunePower:    rec.TunePower,
					TuneHandling: rec.TuneHandling,
					Rank:         *rank,
				})
		}

		stats, err := battleledger.Aggregate(ctx, c.Conn(), carID)
		if err != nil {
			return err
		}
		ret.BattleStats = *stats

		battles, err := battleledger.History(ctx, c.Conn(), carID, false, s.historyLimit)
		if err != nil {
			return err
		}
		ret.Battles = battles
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
