//nolint:whitespace // can't make both editor and linter happy
package crown

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
)

var selector = `select c.area, c.car_id, c.updated_at from crown c`

// Holder returns the current champion of the area.
// Returns repository.ErrNoData when the crown is unclaimed.
func Holder(ctx context.Context, conn repository.Querier, area model.Area) (
	*model.CrownHolder, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where c.area=$1", selector), area)
	ret, err := readData(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoData
		}
		return nil, err
	}
	return ret, nil
}

// Upsert makes carId the champion of the area, claiming the crown if it
// was unclaimed. Last writer wins.
func Upsert(ctx context.Context, conn repository.Querier, area model.Area, carID int64) error {
	_, err := conn.Exec(ctx, `
	insert into crown (area, car_id, updated_at)
	values ($1,$2,now())
	on conflict (area) do update set car_id=excluded.car_id, updated_at=now()
	`, area, carID)
	return err
}

// LoadAll returns every claimed crown ordered by area. Used by the
// attract screen crown list.
func LoadAll(ctx context.Context, conn repository.Querier) (
	[]*model.CrownHolder, error,
) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by c.area asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.CrownHolder, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// deletes the crown of an area, returns number of rows deleted.
func DeleteByArea(ctx context.Context, conn repository.Querier, area model.Area) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from crown where area=$1", area)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.CrownHolder, error) {
	var item model.CrownHolder
	if err := row.Scan(&item.Area, &item.CarID, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
