package datastore

import (
	"context"
	"errors"
	"time"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

func CreateTableAttendance(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Attendance)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// one attendance per user per calendar date
	_, err = db.NewCreateIndex().Model((*models.Attendance)(nil)).
		Index("index_attendance_user_date").
		Unique().
		IfNotExists().
		Column("user_id", "date").
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Attendance)(nil)).Index("index_attendance_date").IfNotExists().Column("date").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateAttendance(ctx context.Context, db bun.IDB, userID int64, date time.Time, score, consecutiveDays int) (*models.Attendance, error) {
	attendance := &models.Attendance{
		UserID:          userID,
		Date:            models.DateOf(date),
		Score:           score,
		ConsecutiveDays: consecutiveDays,
		CreatedAt:       time.Now(),
	}
	_, err := db.NewInsert().Model(attendance).Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return nil, interfaces.ErrDuplicateAttendance
		}
		return nil, err
	}

	return attendance, nil
}

func CountAttendances(ctx context.Context, db bun.IDB, from, to time.Time) (int, error) {
	count, err := db.NewSelect().Model((*models.Attendance)(nil)).
		Where("date >= ? AND date < ?", from, to).
		Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func GetAttendancesByUser(ctx context.Context, db bun.IDB, userID int64, limit int) ([]*models.Attendance, error) {
	var attendances []*models.Attendance
	err := db.NewSelect().Model(&attendances).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return attendances, nil
}
