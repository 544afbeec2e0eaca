//nolint:dupl,funlen,errcheck //ok for this test code
package crown

import (
	"context"
	"log"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
	"github.com/banahub/bayshore-backend-go/testsupport/testdb"
)

func createSampleEntry(db *pgxpool.Pool, area model.Area, carID int64) {
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		return Upsert(context.Background(), tx, area, carID)
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
}

func TestHolder(t *testing.T) {
	pool := testdb.InitTestDb()
	createSampleEntry(pool, model.AreaKobe, 23)

	type args struct {
		area model.Area
	}
	tests := []struct {
		name    string
		args    args
		want    int64
		wantErr bool
	}{
		{
			name: "claimed area",
			args: args{area: model.AreaKobe},
			want: 23,
		},
		{
			name:    "unclaimed area",
			args:    args{area: model.AreaNagoya},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		ctx := context.Background()
		t.Run(tt.name, func(t *testing.T) {
			err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
				got, err := Holder(ctx, c.Conn(), tt.args.area)
				if err != nil {
					return err
				}
				assert.Equal(t, tt.want, got.CarID)
				assert.Equal(t, tt.args.area, got.Area)
				return nil
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, repository.ErrNoData)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpsertTransfersCrown(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	createSampleEntry(pool, model.AreaKobe, 23)
	// new champion replaces the old row, no second row appears
	createSampleEntry(pool, model.AreaKobe, 42)

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := Holder(ctx, c.Conn(), model.AreaKobe)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(42), got.CarID)

		all, err := LoadAll(ctx, c.Conn())
		if err != nil {
			return err
		}
		assert.Len(t, all, 1)
		return nil
	})
	assert.NoError(t, err)
}

func TestLoadAll(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	createSampleEntry(pool, model.AreaHakone, 5)
	createSampleEntry(pool, model.AreaTokyo, 7)

	err := pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		got, err := LoadAll(ctx, c.Conn())
		if err != nil {
			return err
		}
		// ordered by area
		assert.Len(t, got, 2)
		assert.Equal(t, model.AreaTokyo, got[0].Area)
		assert.Equal(t, model.AreaHakone, got[1].Area)
		return nil
	})
	assert.NoError(t, err)
}

func TestDeleteByArea(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	createSampleEntry(pool, model.AreaOsaka, 11)

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		num, err := DeleteByArea(ctx, tx, model.AreaOsaka)
		assert.Equal(t, 1, num)
		return err
	})
	assert.NoError(t, err)

	err = pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
		_, err := Holder(ctx, c.Conn(), model.AreaOsaka)
		assert.ErrorIs(t, err, repository.ErrNoData)
		return nil
	})
	assert.NoError(t, err)
}
