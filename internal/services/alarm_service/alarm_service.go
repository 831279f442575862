package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/lib/pagination"
	"fourcut/internal/metrics"
	"fourcut/internal/repository"
	"fourcut/internal/storage"
)

// AlarmService пишет уведомления и отдает их получателю. Счетчик непрочитанных
// кешируется в Redis; ошибки кеша только логируются.
type AlarmService struct {
	log    *slog.Logger
	alarms repository.AlarmRepository
	cache  repository.AlarmCacheRepository
}

func NewAlarmService(log *slog.Logger, alarms repository.AlarmRepository, cache repository.AlarmCacheRepository) *AlarmService {
	return &AlarmService{
		log:    log,
		alarms: alarms,
		cache:  cache,
	}
}

// Emit записывает одно уведомление в транзакции вызывающего. Кеш счетчика получателя
// сбрасывается только после коммита.
func (s *AlarmService) Emit(ctx context.Context, event models.AlarmEvent) error {
	const op = "service.AlarmService.Emit"
	log := s.log.With(
		slog.String("op", op),
		slog.String("type", string(event.Type)),
		slog.Int64("receiver_id", event.ReceiverID),
	)

	alarm := models.Alarm{
		ReceiverID: event.ReceiverID,
		SenderID:   event.SenderID,
		Type:       event.Type,
		GalleryID:  event.GalleryID,
		ArtworkID:  event.ArtworkID,
	}

	id, err := s.alarms.CreateAlarm(ctx, alarm)
	if err != nil {
		log.Error("failed to create alarm", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	receiverID := event.ReceiverID
	repository.AfterCommit(ctx, func() {
		metrics.AlarmsEmittedTotal.WithLabelValues(string(event.Type)).Inc()
		s.invalidate(context.WithoutCancel(ctx), receiverID)
	})

	log.Debug("alarm created", slog.Int64("alarm_id", id))
	return nil
}

// MarkRead помечает уведомление прочитанным. Повторный вызов ничего не меняет.
func (s *AlarmService) MarkRead(ctx context.Context, memberID, alarmID int64) error {
	const op = "service.AlarmService.MarkRead"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("alarm_id", alarmID),
	)

	alarm, err := s.alarms.GetAlarmByID(ctx, alarmID)
	if err != nil {
		if errors.Is(err, storage.ErrAlarmNotFound) {
			return fmt.Errorf("%s: %w", op, errs.ErrAlarmNotFound)
		}
		log.Error("failed to get alarm", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if alarm.ReceiverID != memberID {
		log.Warn("alarm belongs to another member")
		return fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}

	if alarm.Read {
		return nil
	}

	if err := s.alarms.MarkAlarmRead(ctx, alarmID); err != nil {
		log.Error("failed to mark alarm read", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, memberID)

	log.Info("alarm marked read")
	return nil
}

// ListForMember страница уведомлений получателя, новые первыми.
func (s *AlarmService) ListForMember(ctx context.Context, memberID int64, rawFilter string, page, size int) (models.AlarmPage, error) {
	const op = "service.AlarmService.ListForMember"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	filter, err := models.ParseAlarmFilter(rawFilter)
	if err != nil {
		log.Warn("invalid alarm filter", slog.String("filter", rawFilter))
		return models.AlarmPage{}, fmt.Errorf("%s: %w", op, errs.ErrInvalidAlarmFilter.WithMessage(err.Error()))
	}

	page, size = pagination.Normalize(page, size)

	alarms, total, err := s.alarms.ListAlarms(ctx, memberID, filter, page, size)
	if err != nil {
		log.Error("failed to list alarms", slog.Any("err", err))
		return models.AlarmPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.AlarmPage{
		Alarms:   alarms,
		PageInfo: models.NewPageInfo(page, size, total),
	}, nil
}

// UnreadCount число непрочитанных уведомлений. Сначала кеш, затем база. Значение из базы
// попадает в кеш, только если между чтением версии и записью не было инвалидации.
func (s *AlarmService) UnreadCount(ctx context.Context, memberID int64) (int64, error) {
	const op = "service.AlarmService.UnreadCount"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	count, ok, err := s.cache.GetUnreadCount(ctx, memberID)
	if err != nil {
		log.Warn("unread count cache unavailable", slog.Any("err", err))
	}
	if ok {
		return count, nil
	}

	version, versionErr := s.cache.UnreadVersion(ctx, memberID)
	if versionErr != nil {
		log.Warn("failed to read unread count version", slog.Any("err", versionErr))
	}

	count, err = s.alarms.CountUnread(ctx, memberID)
	if err != nil {
		log.Error("failed to count unread alarms", slog.Any("err", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if versionErr != nil {
		return count, nil
	}

	stored, err := s.cache.SetUnreadCount(ctx, memberID, count, version)
	if err != nil {
		log.Warn("failed to cache unread count", slog.Any("err", err))
	} else if !stored {
		log.Debug("unread count changed while counting, cache left empty")
	}

	return count, nil
}

func (s *AlarmService) invalidate(ctx context.Context, receiverIDs ...int64) {
	if err := s.cache.InvalidateUnreadCount(ctx, receiverIDs...); err != nil {
		s.log.Warn("failed to invalidate unread count",
			slog.String("op", "service.AlarmService.invalidate"),
			slog.Any("err", err),
		)
	}
}
