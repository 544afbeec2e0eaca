//nolint:dupl,funlen,errcheck //ok for this test code
package timeattack

import (
	"context"
	"log"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"gotest.tools/v3/assert"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/testsupport/basedata"
	"github.com/banahub/bayshore-backend-go/testsupport/testdb"
)

func createSampleEntry(db *pgxpool.Pool, rec *model.TimeAttackRecord) {
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		return Upsert(context.Background(), tx, rec)
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
}

func TestUpsertKeepsOneRowPerCourse(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	createSampleEntry(pool, basedata.SampleTimeAttack(23, model.CourseC1In, 45000))
	// an improved lap replaces the row
	createSampleEntry(pool, basedata.SampleTimeAttack(23, model.CourseC1In, 43000))
	createSampleEntry(pool, basedata.SampleTimeAttack(23, model.CourseOsaka, 51000))

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := LoadByCar(ctx, c.Conn(), 23)
		if err != nil {
			return err
		}
		assert.Equal(t, len(got), 2)
		assert.Equal(t, got[0].Course, model.CourseC1In)
		assert.Equal(t, got[0].LapTime, 43000)
		assert.Equal(t, got[1].Course, model.CourseOsaka)
		return nil
	})
	assert.NilError(t, err)
}

func TestLoadByCourseOrdering(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	createSampleEntry(pool, basedata.SampleTimeAttack(2, model.CourseC1In, 45000))
	createSampleEntry(pool, basedata.SampleTimeAttack(1, model.CourseC1In, 42000))
	createSampleEntry(pool, basedata.SampleTimeAttack(3, model.CourseC1In, 50000))
	createSampleEntry(pool, basedata.SampleTimeAttack(4, model.CourseOsaka, 40000))

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := LoadByCourse(ctx, c.Conn(), model.CourseC1In)
		if err != nil {
			return err
		}
		ids := lo.Map(got, func(r *model.TimeAttackRecord, _ int) int64 {
			return r.CarID
		})
		assert.DeepEqual(t, ids, []int64{1, 2, 3})
		return nil
	})
	assert.NilError(t, err)
}

func TestLoadByCourseAndModel(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	fast := basedata.SampleTimeAttack(1, model.CourseC1In, 42000)
	fast.Model = 3
	createSampleEntry(pool, fast)
	other := basedata.SampleTimeAttack(2, model.CourseC1In, 45000)
	other.Model = 7
	createSampleEntry(pool, other)
	slow := basedata.SampleTimeAttack(3, model.CourseC1In, 50000)
	slow.Model = 3
	createSampleEntry(pool, slow)

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := LoadByCourseAndModel(ctx, c.Conn(), model.CourseC1In, 3)
		if err != nil {
			return err
		}
		assert.Equal(t, len(got), 2)
		assert.Equal(t, got[0].CarID, int64(1))
		assert.Equal(t, got[1].CarID, int64(3))
		return nil
	})
	assert.NilError(t, err)
}
