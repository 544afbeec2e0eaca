package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/banahub/bayshore-backend-go/log"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
	"github.com/banahub/bayshore-backend-go/pkg/repository/contestlock"
	"github.com/banahub/bayshore-backend-go/pkg/repository/crown"
	"github.com/banahub/bayshore-backend-go/pkg/repository/ghosttrail"
)

type CrownService struct {
	pool *pgxpool.Pool
	l    *log.Logger
}

func InitCrownService(pool *pgxpool.Pool) *CrownService {
	return &CrownService{
		pool: pool,
		l:    log.Default().Named("service.crown"),
	}
}

// LockCrown commits the car to contesting the area's crown. The lock is
// consumed by the following save-result call.
func (s *CrownService) LockCrown(ctx context.Context, req *LockCrownRequest) error {
	if err := req.validate(); err != nil {
		return err
	}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return contestlock.Create(ctx, tx, req.CarID, req.Area, req.LockTime)
	})
	if err != nil {
		s.l.Error("lock crown failed",
			log.Int64("carId", req.CarID),
			log.Any("area", req.Area),
			log.ErrorField(err))
		return err
	}
	s.l.Debug("crown locked",
		log.Int64("carId", req.CarID), log.Any("area", req.Area))
	return nil
}

// CrownList returns every claimed crown with the availability of the
// champion's trail. Feeds the attract screen.
func (s *CrownService) CrownList(ctx context.Context) ([]CrownListEntry, error) {
	ret := make([]CrownListEntry, 0)
	err := s.pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		holders, err := crown.LoadAll(ctx, c.Conn())
		if err != nil {
			return err
		}
		for _, h := range holders {
			entry := CrownListEntry{Area: h.Area, CarID: h.CarID}
			if _, err := ghosttrail.LatestForHolder(ctx, c.Conn(), h.Area); err != nil {
				if !errors.Is(err, repository.ErrNoData) {
					return err
				}
			} else {
				entry.HasTrail = true
			}
			ret = append(ret, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
