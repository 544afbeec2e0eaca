//nolint:whitespace // can't make both editor and linter happy
package ghosttrail

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
)

var selector = `select g.id, g.car_id, g.area, g.crown_battle, g.ramp, g.trail,
	g.played_at, g.car_name, g.model, g.tune_power, g.tune_handling
	from ghost_trail g`

// Save replaces the live trail for (carId, area, crownBattle) with the
// given one. Only the most recent capture per key triple is retained.
// Callers must run this inside a transaction so the delete and insert are
// applied atomically.
func Save(ctx context.Context, conn repository.Querier, trail *model.GhostTrail) error {
	if trail.ID.IsNil() {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		trail.ID = id
	}
	_, err := conn.Exec(ctx, `
	delete from ghost_trail where car_id=$1 and area=$2 and crown_battle=$3
	`, trail.CarID, trail.Area, trail.CrownBattle)
	if err != nil {
		return err
	}
	_, err = conn.Exec(ctx, `
	insert into ghost_trail (
		id, car_id, area, crown_battle, ramp, trail, played_at,
		car_name, model, tune_power, tune_handling
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		trail.ID, trail.CarID, trail.Area, trail.CrownBattle, trail.Ramp,
		trail.Trail, trail.PlayedAt,
		trail.Car.Name, trail.Car.Model, trail.Car.TunePower, trail.Car.TuneHandling,
	)
	return err
}

// LoadByKey returns the live trail for the key triple.
// Returns repository.ErrNoData when none exists.
func LoadByKey(
	ctx context.Context,
	conn repository.Querier,
	carID int64,
	area model.Area,
	crownBattle bool,
) (*model.GhostTrail, error) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where g.car_id=$1 and g.area=$2 and g.crown_battle=$3", selector),
		carID, area, crownBattle)
	return readData(row)
}

// LatestForHolder returns the most recent crown trail belonging to the
// area's current champion. Returns repository.ErrNoData when the crown is
// unclaimed or the champion has no crown trail on record.
func LatestForHolder(ctx context.Context, conn repository.Querier, area model.Area) (
	*model.GhostTrail, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf(`%s
	where g.area=$1 and g.crown_battle=true
	  and g.car_id=(select car_id from crown where area=$1)
	order by g.played_at desc
	limit 1`, selector), area)
	return readData(row)
}

// Recent returns up to limit trails with the given contest flag, most
// recent first. area restricts the listing when non-nil. The result is a
// snapshot; re-invoke for fresh data.
func Recent(
	ctx context.Context,
	conn repository.Querier,
	crownBattle bool,
	limit int,
	area *model.Area,
) ([]*model.GhostTrail, error) {
	var rows pgx.Rows
	var err error
	if area != nil {
		rows, err = conn.Query(ctx, fmt.Sprintf(`%s
		where g.crown_battle=$1 and g.area=$2
		order by g.played_at desc limit $3`, selector),
			crownBattle, *area, limit)
	} else {
		rows, err = conn.Query(ctx, fmt.Sprintf(`%s
		where g.crown_battle=$1
		order by g.played_at desc limit $2`, selector),
			crownBattle, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.GhostTrail, 0, limit)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

func readData(row pgx.Row) (*model.GhostTrail, error) {
	var item model.GhostTrail
	if err := row.Scan(
		&item.ID,
		&item.CarID,
		&item.Area,
		&item.CrownBattle,
		&item.Ramp,
		&item.Trail,
		&item.PlayedAt,
		&item.Car.Name,
		&item.Car.Model,
		&item.Car.TunePower,
		&item.Car.TuneHandling,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoData
		}
		return nil, err
	}
	return &item, nil
}
