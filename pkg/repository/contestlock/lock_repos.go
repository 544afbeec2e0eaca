//nolint:whitespace // can't make both editor and linter happy
package contestlock

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/repository"
)

// Create registers a contest lock for (carId, area). A lock request for a
// key that is already locked is treated as a retry from the cabinet and
// refreshes the lock time instead of failing.
func Create(
	ctx context.Context,
	conn repository.Querier,
	carID int64,
	area model.Area,
	lockTime int64,
) error {
	_, err := conn.Exec(ctx, `
	insert into contest_lock (car_id, area, status, lock_time)
	values ($1,$2,$3,$4)
	on conflict (car_id, area) do update
	  set lock_time=excluded.lock_time, created_at=now()
	`, carID, area, model.LockStatusLocked, lockTime)
	return err
}

// Resolve reports whether an active lock exists for (carId, area).
// When invoked inside a transaction the matching row is locked so that
// two concurrent challengers serialize on it.
func Resolve(
	ctx context.Context,
	conn repository.Querier,
	carID int64,
	area model.Area,
) (bool, error) {
	return resolve(ctx, conn, carID, area, 0)
}

// ResolveFresh behaves like Resolve but ignores locks older than maxAge.
// maxAge <= 0 disables the cut-off.
func ResolveFresh(
	ctx context.Context,
	conn repository.Querier,
	carID int64,
	area model.Area,
	maxAge time.Duration,
) (bool, error) {
	return resolve(ctx, conn, carID, area, maxAge)
}

func resolve(
	ctx context.Context,
	conn repository.Querier,
	carID int64,
	area model.Area,
	maxAge time.Duration,
) (bool, error) {
	var id int64
	var createdAt time.Time
	row := conn.QueryRow(ctx, `
	select id, created_at from contest_lock
	where car_id=$1 and area=$2 and status=$3
	for update
	`, carID, area, model.LockStatusLocked)
	if err := row.Scan(&id, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if maxAge > 0 && time.Since(createdAt) > maxAge {
		return false, nil
	}
	return true, nil
}

// Clear deletes all lock rows for (carId, area), returns number of rows
// deleted. Called after a result is resolved regardless of outcome.
func Clear(ctx context.Context, conn repository.Querier, carID int64, area model.Area) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"delete from contest_lock where car_id=$1 and area=$2", carID, area)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}
