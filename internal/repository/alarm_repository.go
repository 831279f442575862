package repository

import (
	"context"
	"errors"
	"fmt"

	"fourcut/internal/domain/models"
	"fourcut/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var alarmColumns = []string{
	"id",
	"receiver_id",
	"sender_id",
	"alarm_type",
	"gallery_id",
	"artwork_id",
	"read",
	"created_at",
}

type AlarmRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewAlarmRepo(db *pgxpool.Pool) *AlarmRepo {
	return &AlarmRepo{
		db: db,
		sb: psql,
	}
}

// CreateAlarm пишет уведомление в текущей транзакции вызывающего
func (r *AlarmRepo) CreateAlarm(ctx context.Context, alarm models.Alarm) (int64, error) {
	const op = "repository.AlarmRepo.CreateAlarm"

	query, args, err := r.sb.Insert("alarms").
		Columns("receiver_id", "sender_id", "alarm_type", "gallery_id", "artwork_id", "read").
		Values(alarm.ReceiverID, alarm.SenderID, string(alarm.Type), alarm.GalleryID, alarm.ArtworkID, false).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *AlarmRepo) GetAlarmByID(ctx context.Context, alarmID int64) (models.Alarm, error) {
	const op = "repository.AlarmRepo.GetAlarmByID"

	query, args, err := r.sb.Select(alarmColumns...).
		From("alarms").
		Where(squirrel.Eq{"id": alarmID}).
		ToSql()
	if err != nil {
		return models.Alarm{}, fmt.Errorf("%s: %w", op, err)
	}

	var alarm models.Alarm
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&alarm.ID,
		&alarm.ReceiverID,
		&alarm.SenderID,
		&alarm.Type,
		&alarm.GalleryID,
		&alarm.ArtworkID,
		&alarm.Read,
		&alarm.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Alarm{}, fmt.Errorf("%s: %w", op, storage.ErrAlarmNotFound)
		}
		return models.Alarm{}, fmt.Errorf("%s: %w", op, err)
	}

	return alarm, nil
}

// MarkAlarmRead выставляет флаг прочтения; повторный вызов ничего не меняет
func (r *AlarmRepo) MarkAlarmRead(ctx context.Context, alarmID int64) error {
	const op = "repository.AlarmRepo.MarkAlarmRead"

	query, args, err := r.sb.Update("alarms").
		Set("read", true).
		Where(squirrel.Eq{"id": alarmID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrAlarmNotFound)
	}

	return nil
}

// ListAlarms страница уведомлений получателя, новые первыми. Никнейм отправителя и
// название работы подтягиваются join-ом на момент чтения; удаленная работа дает пустое название.
func (r *AlarmRepo) ListAlarms(ctx context.Context, receiverID int64, filter models.AlarmFilter, page, size int) ([]models.AlarmView, int64, error) {
	const op = "repository.AlarmRepo.ListAlarms"

	where := squirrel.Eq{"a.receiver_id": receiverID}
	if filter.Type != "" {
		where["a.alarm_type"] = string(filter.Type)
	}

	q := conn(ctx, r.db)

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").
		From("alarms a").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(
		"a.id",
		"a.receiver_id",
		"a.sender_id",
		"a.alarm_type",
		"a.gallery_id",
		"a.artwork_id",
		"a.read",
		"a.created_at",
		"COALESCE(s.nickname, '')",
		"COALESCE(w.title, '')",
	).
		From("alarms a").
		LeftJoin("members s ON s.id = a.sender_id").
		LeftJoin("artworks w ON w.id = a.artwork_id").
		Where(where).
		OrderBy("a.id DESC").
		Limit(uint64(size)).
		Offset(offset(page, size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	views := make([]models.AlarmView, 0, size)
	for rows.Next() {
		var view models.AlarmView
		err := rows.Scan(
			&view.ID,
			&view.ReceiverID,
			&view.SenderID,
			&view.Type,
			&view.GalleryID,
			&view.ArtworkID,
			&view.Read,
			&view.CreatedAt,
			&view.SenderNickname,
			&view.ArtworkTitle,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return views, total, nil
}

func (r *AlarmRepo) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	const op = "repository.AlarmRepo.CountUnread"

	query, args, err := r.sb.Select("COUNT(*)").
		From("alarms").
		Where(squirrel.Eq{"receiver_id": receiverID, "read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int64
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
