//nolint:dupl,funlen,errcheck //ok for this test code
package ghosttrail

import (
	"context"
	"log"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
	crownrepos "github.com/banahub/bayshore-backend-go/pkg/repository/crown"
	"github.com/banahub/bayshore-backend-go/testsupport/basedata"
	"github.com/banahub/bayshore-backend-go/testsupport/testdb"
)

func createSampleEntry(db *pgxpool.Pool, trail *model.GhostTrail) *model.GhostTrail {
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		return Save(context.Background(), tx, trail)
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	return trail
}

func TestSaveReplaces(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	first := basedata.SampleTrail(23, model.AreaHakone, false)
	first.Trail = []byte{0xaa, 0xbb}
	createSampleEntry(pool, first)

	second := basedata.SampleTrail(23, model.AreaHakone, false)
	second.Trail = []byte{0xcc, 0xdd}
	second.PlayedAt = first.PlayedAt + 60
	createSampleEntry(pool, second)

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		var num int
		row := c.Conn().QueryRow(ctx,
			"select count(*) from ghost_trail where car_id=$1 and area=$2",
			23, model.AreaHakone)
		if err := row.Scan(&num); err != nil {
			return err
		}
		assert.Equal(t, 1, num)

		got, err := LoadByKey(ctx, c.Conn(), 23, model.AreaHakone, false)
		if err != nil {
			return err
		}
		assert.Equal(t, []byte{0xcc, 0xdd}, got.Trail)
		assert.Equal(t, second.ID, got.ID)
		return nil
	})
	assert.NoError(t, err)
}

func TestSaveKeepsOtherKeys(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	// crown and normal trails of the same car coexist
	createSampleEntry(pool, basedata.SampleTrail(23, model.AreaHakone, false))
	createSampleEntry(pool, basedata.SampleTrail(23, model.AreaHakone, true))
	createSampleEntry(pool, basedata.SampleTrail(23, model.AreaOsaka, false))

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		var num int
		row := c.Conn().QueryRow(ctx,
			"select count(*) from ghost_trail where car_id=$1", 23)
		if err := row.Scan(&num); err != nil {
			return err
		}
		assert.Equal(t, 3, num)
		return nil
	})
	assert.NoError(t, err)
}

func TestLoadByKey(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	sample := createSampleEntry(pool,
		basedata.SampleTrail(23, model.AreaHakone, false))

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := LoadByKey(ctx, c.Conn(), 23, model.AreaHakone, false)
		if err != nil {
			return err
		}
		assert.Equal(t, sample.ID, got.ID)
		assert.Equal(t, sample.Car, got.Car)
		assert.Equal(t, sample.Trail, got.Trail)

		_, err = LoadByKey(ctx, c.Conn(), 23, model.AreaHakone, true)
		assert.ErrorIs(t, err, repository.ErrNoData)
		return nil
	})
	assert.NoError(t, err)
}

func TestLatestForHolder(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	// champion 23 with a crown trail, challenger 42's trail is ignored
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return crownrepos.Upsert(ctx, tx, model.AreaHakone, 23)
	})
	assert.NoError(t, err)
	createSampleEntry(pool, basedata.SampleTrail(23, model.AreaHakone, true))
	createSampleEntry(pool, basedata.SampleTrail(42, model.AreaHakone, true))

	err = pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := LatestForHolder(ctx, c.Conn(), model.AreaHakone)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(23), got.CarID)

		// unclaimed area
		_, err = LatestForHolder(ctx, c.Conn(), model.AreaOsaka)
		assert.ErrorIs(t, err, repository.ErrNoData)
		return nil
	})
	assert.NoError(t, err)
}

func TestRecent(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	old := basedata.SampleTrail(23, model.AreaHakone, false)
	createSampleEntry(pool, old)
	fresh := basedata.SampleTrail(42, model.AreaOsaka, false)
	fresh.PlayedAt = old.PlayedAt + 120
	createSampleEntry(pool, fresh)
	createSampleEntry(pool, basedata.SampleTrail(7, model.AreaHakone, true))

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := Recent(ctx, c.Conn(), false, 10, nil)
		if err != nil {
			return err
		}
		// most recent first, crown trails excluded
		assert.Len(t, got, 2)
		assert.Equal(t, int64(42), got[0].CarID)
		assert.Equal(t, int64(23), got[1].CarID)

		area := model.AreaHakone
		scoped, err := Recent(ctx, c.Conn(), false, 10, &area)
		if err != nil {
			return err
		}
		assert.Len(t, scoped, 1)
		assert.Equal(t, int64(23), scoped[0].CarID)

		limited, err := Recent(ctx, c.Conn(), false, 1, nil)
		if err != nil {
			return err
		}
		assert.Len(t, limited, 1)
		return nil
	})
	assert.NoError(t, err)
}
