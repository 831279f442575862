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

type MemberRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewMemberRepo(db *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{
		db: db,
		sb: psql,
	}
}

// GetMemberByID возвращает участника по ID
func (r *MemberRepo) GetMemberByID(ctx context.Context, memberID int64) (models.Member, error) {
	const op = "repository.MemberRepo.GetMemberByID"

	query, args, err := r.sb.Select("id", "nickname", "profile", "status").
		From("members").
		Where(squirrel.Eq{"id": memberID}).
		ToSql()
	if err != nil {
		return models.Member{}, fmt.Errorf("%s: %w", op, err)
	}

	var member models.Member
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&member.ID,
		&member.Nickname,
		&member.Profile,
		&member.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Member{}, fmt.Errorf("%s: %w", op, storage.ErrMemberNotFound)
		}
		return models.Member{}, fmt.Errorf("%s: %w", op, err)
	}

	return member, nil
}
