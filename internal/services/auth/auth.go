// Package auth проверяет, что участник из access-токена существует и активен.
// Результаты проверки кешируются в памяти процесса на короткое время.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/storage"

	"github.com/patrickmn/go-cache"
)

type MemberProvider interface {
	GetMemberByID(ctx context.Context, memberID int64) (models.Member, error)
}

type Auth struct {
	log     *slog.Logger
	members MemberProvider
	cache   *cache.Cache
}

func New(log *slog.Logger, members MemberProvider, cacheTTL time.Duration) *Auth {
	return &Auth{
		log:     log,
		members: members,
		cache:   cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Resolve возвращает активного участника. Неизвестный или удаленный участник дает
// errs.ErrMemberNotFound; такой результат не кешируется.
func (a *Auth) Resolve(ctx context.Context, memberID int64) (models.Member, error) {
	const op = "auth.Resolve"

	key := strconv.FormatInt(memberID, 10)
	if cached, ok := a.cache.Get(key); ok {
		return cached.(models.Member), nil
	}

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	member, err := a.members.GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, storage.ErrMemberNotFound) {
			log.Warn("member not found", slog.Any("err", err))
			return models.Member{}, fmt.Errorf("%s: %w", op, errs.ErrMemberNotFound)
		}
		log.Error("failed to get member", slog.Any("err", err))
		return models.Member{}, fmt.Errorf("%s: %w", op, err)
	}

	if !member.IsActive() {
		log.Warn("member is not active", slog.String("status", string(member.Status)))
		return models.Member{}, fmt.Errorf("%s: %w", op, errs.ErrMemberNotFound)
	}

	a.cache.SetDefault(key, member)

	return member, nil
}

// Forget убирает участника из кеша, например после смены статуса.
func (a *Auth) Forget(memberID int64) {
	a.cache.Delete(strconv.FormatInt(memberID, 10))
}
