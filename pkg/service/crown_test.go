//nolint:dupl,funlen,errcheck //ok for this test code
package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository/contestlock"
	"github.com/banahub/bayshore-backend-go/testsupport/testdb"
)

func TestLockCrown(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	crownSrv := InitCrownService(pool)

	err := crownSrv.LockCrown(ctx, &LockCrownRequest{
		CarID: 2, Area: model.AreaTokyo, LockTime: 1000,
	})
	assert.NoError(t, err)
	// a retry refreshes the lock instead of failing
	err = crownSrv.LockCrown(ctx, &LockCrownRequest{
		CarID: 2, Area: model.AreaTokyo, LockTime: 2000,
	})
	assert.NoError(t, err)

	err = pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		locked, err := contestlock.Resolve(ctx, c.Conn(), 2, model.AreaTokyo)
		assert.True(t, locked)
		return err
	})
	assert.NoError(t, err)

	err = crownSrv.LockCrown(ctx, &LockCrownRequest{
		CarID: 2, Area: model.Area(99), LockTime: 1000,
	})
	assert.ErrorIs(t, err, ErrInvalidArea)
	err = crownSrv.LockCrown(ctx, &LockCrownRequest{
		CarID: 0, Area: model.AreaTokyo, LockTime: 1000,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCrownList(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	crownSrv := InitCrownService(pool)
	gameSrv := InitGameService(pool)
	ghostSrv := InitGhostService(pool)

	got, err := crownSrv.CrownList(ctx)
	assert.NoError(t, err)
	assert.Len(t, got, 0)

	// 2 claims tokyo and uploads a trail, 7 claims hakone without one
	err = crownSrv.LockCrown(ctx, &LockCrownRequest{
		CarID: 2, Area: model.AreaTokyo, LockTime: 1000,
	})
	assert.NoError(t, err)
	_, err = ghostSrv.SaveGhostTrail(ctx, sampleTrailRequest(2, model.AreaTokyo))
	assert.NoError(t, err)
	_, err = gameSrv.SaveGameResult(ctx, sampleResultRequest(2, model.AreaTokyo, true))
	assert.NoError(t, err)

	err = crownSrv.LockCrown(ctx, &LockCrownRequest{
		CarID: 7, Area: model.AreaHakone, LockTime: 1000,
	})
	assert.NoError(t, err)
	_, err = gameSrv.SaveGameResult(ctx, sampleResultRequest(7, model.AreaHakone, true))
	assert.NoError(t, err)

	got, err = crownSrv.CrownList(ctx)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, model.AreaTokyo, got[0].Area)
	assert.Equal(t, int64(2), got[0].CarID)
	assert.True(t, got[0].HasTrail)
	assert.Equal(t, model.AreaHakone, got[1].Area)
	assert.Equal(t, int64(7), got[1].CarID)
	assert.False(t, got[1].HasTrail)
}
