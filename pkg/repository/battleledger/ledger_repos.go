//nolint:whitespace // can't make both editor and linter happy
package battleledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
)

var selector = `select b.id, b.car_id, b.opponent_car_id, b.opponent_tune_power,
	b.opponent_tune_handling, b.area, b.result, b.crown_battle, b.played_at,
	b.shop_name
	from battle_record b`

// Record appends one battle to the ledger. Rows are immutable; no update
// or delete exists.
func Record(ctx context.Context, conn repository.Querier, rec *model.BattleRecord) error {
	row := conn.QueryRow(ctx, `
	insert into battle_record (
		car_id, opponent_car_id, opponent_tune_power, opponent_tune_handling,
		area, result, crown_battle, played_at, shop_name
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	returning id
	`,
		rec.CarID, rec.Opponent.CarID, rec.Opponent.TunePower,
		rec.Opponent.TuneHandling, rec.Area, rec.Result, rec.CrownBattle,
		rec.PlayedAt, rec.ShopName,
	)
	return row.Scan(&rec.ID)
}

// History returns up to limit battles of the car with the given contest
// flag, most recent first.
func History(
	ctx context.Context,
	conn repository.Querier,
	carID int64,
	crownBattle bool,
	limit int,
) ([]*model.BattleRecord, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf(`%s
	where b.car_id=$1 and b.crown_battle=$2
	order by b.played_at desc limit $3`, selector),
		carID, crownBattle, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.BattleRecord, 0, limit)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// Aggregate returns count and wins of the car's non-contest battles.
// Crown battles are tracked separately and never merged into this total.
func Aggregate(ctx context.Context, conn repository.Querier, carID int64) (
	*model.BattleStats, error,
) {
	var stats model.BattleStats
	row := conn.QueryRow(ctx, `
	select count(*), count(*) filter (where result)
	from battle_record
	where car_id=$1 and crown_battle=false
	`, carID)
	if err := row.Scan(&stats.Count, &stats.Wins); err != nil {
		return nil, err
	}
	return &stats, nil
}

// HasHistory reports whether the car has any non-contest battle on record.
func HasHistory(ctx context.Context, conn repository.Querier, carID int64) (bool, error) {
	var exists bool
	row := conn.QueryRow(ctx, `
	select exists (
		select 1 from battle_record where car_id=$1 and crown_battle=false
	)`, carID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func readData(row pgx.Row) (*model.BattleRecord, error) {
	var item model.BattleRecord
	if err := row.Scan(
		&item.ID,
		&item.CarID,
		&item.Opponent.CarID,
		&item.Opponent.TunePower,
		&item.Opponent.TuneHandling,
		&item.Area,
		&item.Result,
		&item.CrownBattle,
		&item.PlayedAt,
		&item.ShopName,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
