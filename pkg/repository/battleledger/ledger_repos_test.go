//nolint:dupl,funlen,errcheck //ok for this test code
package battleledger

import (
	"context"
	"log"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/testsupport/basedata"
	"github.com/banahub/bayshore-backend-go/testsupport/testdb"
)

func createSampleEntry(db *pgxpool.Pool, rec *model.BattleRecord) *model.BattleRecord {
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		return Record(context.Background(), tx, rec)
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	return rec
}

func TestRecordAppends(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	first := createSampleEntry(pool, basedata.SampleBattle(23, model.AreaHakone, true))
	assert.Greater(t, first.ID, int64(0))
	// identical payloads never collide, the ledger only grows
	second := createSampleEntry(pool, basedata.SampleBattle(23, model.AreaHakone, true))
	assert.Greater(t, second.ID, first.ID)

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		var num int
		row := c.Conn().QueryRow(ctx,
			"select count(*) from battle_record where car_id=$1", 23)
		if err := row.Scan(&num); err != nil {
			return err
		}
		assert.Equal(t, 2, num)
		return nil
	})
	assert.NoError(t, err)
}

func TestHistory(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	old := basedata.SampleBattle(23, model.AreaHakone, true)
	createSampleEntry(pool, old)
	fresh := basedata.SampleBattle(23, model.AreaOsaka, false)
	fresh.PlayedAt = old.PlayedAt + 60
	createSampleEntry(pool, fresh)
	contest := basedata.SampleBattle(23, model.AreaHakone, true)
	contest.CrownBattle = true
	createSampleEntry(pool, contest)

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := History(ctx, c.Conn(), 23, false, 10)
		if err != nil {
			return err
		}
		// most recent first, contest battles excluded
		assert.Len(t, got, 2)
		assert.Equal(t, model.AreaOsaka, got[0].Area)
		assert.Equal(t, model.AreaHakone, got[1].Area)
		assert.Equal(t, old.Opponent, got[1].Opponent)

		crown, err := History(ctx, c.Conn(), 23, true, 10)
		if err != nil {
			return err
		}
		assert.Len(t, crown, 1)

		limited, err := History(ctx, c.Conn(), 23, false, 1)
		if err != nil {
			return err
		}
		assert.Len(t, limited, 1)
		return nil
	})
	assert.NoError(t, err)
}

func TestAggregate(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	createSampleEntry(pool, basedata.SampleBattle(23, model.AreaHakone, true))
	createSampleEntry(pool, basedata.SampleBattle(23, model.AreaHakone, false))
	createSampleEntry(pool, basedata.SampleBattle(23, model.AreaOsaka, true))
	contest := basedata.SampleBattle(23, model.AreaHakone, true)
	contest.CrownBattle = true
	createSampleEntry(pool, contest)
	createSampleEntry(pool, basedata.SampleBattle(42, model.AreaHakone, true))

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		stats, err := Aggregate(ctx, c.Conn(), 23)
		if err != nil {
			return err
		}
		// contest battle and other cars stay out of the totals
		assert.Equal(t, 3, stats.Count)
		assert.Equal(t, 2, stats.Wins)

		empty, err := Aggregate(ctx, c.Conn(), 99)
		if err != nil {
			return err
		}
		assert.Equal(t, 0, empty.Count)
		assert.Equal(t, 0, empty.Wins)
		return nil
	})
	assert.NoError(t, err)
}

func TestHasHistory(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	contest := basedata.SampleBattle(23, model.AreaHakone, true)
	contest.CrownBattle = true
	createSampleEntry(pool, contest)
	createSampleEntry(pool, basedata.SampleBattle(42, model.AreaHakone, false))

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		// only non-contest battles count as ghost history
		got, err := HasHistory(ctx, c.Conn(), 23)
		if err != nil {
			return err
		}
		assert.False(t, got)

		got, err = HasHistory(ctx, c.Conn(), 42)
		if err != nil {
			return err
		}
		assert.True(t, got)
		return nil
	})
	assert.NoError(t, err)
}
