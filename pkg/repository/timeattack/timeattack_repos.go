//nolint:whitespace // can't make both editor and linter happy
package timeattack

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
)

var selector = `select t.car_id, t.course, t.model, t.lap_time, t.tune_power,
	t.tune_handling, t.recorded_at
	from time_attack_record t`

// Records are ordered by lap time with recording time and car id as
// deterministic tie breaks.
const ordering = `order by t.lap_time asc, t.recorded_at asc, t.car_id asc`

// Upsert stores the car's record for a course, one row per car per
// course. Used by the time attack collaborator and by test fixtures.
func Upsert(ctx context.Context, conn repository.Querier, rec *model.TimeAttackRecord) error {
	_, err := conn.Exec(ctx, `
	insert into time_attack_record (
		car_id, course, model, lap_time, tune_power, tune_handling
	) values ($1,$2,$3,$4,$5,$6)
	on conflict (car_id, course) do update set
		model=excluded.model,
		lap_time=excluded.lap_time,
		tune_power=excluded.tune_power,
		tune_handling=excluded.tune_handling,
		recorded_at=now()
	`,
		rec.CarID, rec.Course, rec.Model, rec.LapTime,
		rec.TunePower, rec.TuneHandling,
	)
	return err
}

// LoadByCar returns all course records of the car.
func LoadByCar(ctx context.Context, conn repository.Querier, carID int64) (
	[]*model.TimeAttackRecord, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where t.car_id=$1 order by t.course asc", selector), carID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// LoadByCourse returns all records for a course, best lap first.
func LoadByCourse(ctx context.Context, conn repository.Querier, course model.Course) (
	[]*model.TimeAttackRecord, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where t.course=$1 %s", selector, ordering), course)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// LoadByCourseAndModel returns all records for a course restricted to one
// vehicle model, best lap first.
func LoadByCourseAndModel(
	ctx context.Context,
	conn repository.Querier,
	course model.Course,
	carModel int,
) ([]*model.TimeAttackRecord, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where t.course=$1 and t.model=$2 %s", selector, ordering),
		course, carModel)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*model.TimeAttackRecord, error) {
	defer rows.Close()
	ret := make([]*model.TimeAttackRecord, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

func readData(row pgx.Row) (*model.TimeAttackRecord, error) {
	var item model.TimeAttackRecord
	if err := row.Scan(
		&item.CarID,
		&item.Course,
		&item.Model,
		&item.LapTime,
		&item.TunePower,
		&item.TuneHandling,
		&item.RecordedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
