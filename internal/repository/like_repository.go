package repository

import (
	"context"
	"errors"
	"fmt"

	"fourcut/internal/domain/models"
	"fourcut/internal/storage"
	"fourcut/internal/storage/postgresql"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

const likePairConstraint = "ux_artwork_likes_member_artwork"

type LikeRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewLikeRepo(db *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{
		db: db,
		sb: psql,
	}
}

// GetLikeForUpdate читает строку пары (участник, работа) и блокирует её до конца транзакции
func (r *LikeRepo) GetLikeForUpdate(ctx context.Context, memberID, artworkID int64) (models.ArtworkLike, error) {
	const op = "repository.LikeRepo.GetLikeForUpdate"

	query, args, err := r.sb.Select("id", "member_id", "artwork_id", "status", "created_at", "updated_at").
		From("artwork_likes").
		Where(squirrel.Eq{"member_id": memberID, "artwork_id": artworkID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return models.ArtworkLike{}, fmt.Errorf("%s: %w", op, err)
	}

	var like models.ArtworkLike
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&like.ID,
		&like.MemberID,
		&like.ArtworkID,
		&like.Status,
		&like.CreatedAt,
		&like.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ArtworkLike{}, fmt.Errorf("%s: %w", op, storage.ErrLikeNotFound)
		}
		return models.ArtworkLike{}, fmt.Errorf("%s: %w", op, err)
	}

	return like, nil
}

// CreateLike вставляет первую строку пары. Параллельная вставка той же пары
// возвращает storage.ErrLikeExists, транзакцию после этого нужно повторить целиком.
func (r *LikeRepo) CreateLike(ctx context.Context, like models.ArtworkLike) (int64, error) {
	const op = "repository.LikeRepo.CreateLike"

	query, args, err := r.sb.Insert("artwork_likes").
		Columns("member_id", "artwork_id", "status").
		Values(like.MemberID, like.ArtworkID, string(like.Status)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if postgresql.IsUniqueViolation(err, likePairConstraint) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrLikeExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *LikeRepo) UpdateLikeStatus(ctx context.Context, likeID int64, status models.LikeStatus) error {
	const op = "repository.LikeRepo.UpdateLikeStatus"

	query, args, err := r.sb.Update("artwork_likes").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": likeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrLikeNotFound)
	}

	return nil
}

// LikedArtworkIDs возвращает множество работ из artworkIDs, которые участник сейчас лайкнул
func (r *LikeRepo) LikedArtworkIDs(ctx context.Context, memberID int64, artworkIDs []int64) (map[int64]bool, error) {
	const op = "repository.LikeRepo.LikedArtworkIDs"

	liked := make(map[int64]bool, len(artworkIDs))
	if len(artworkIDs) == 0 {
		return liked, nil
	}

	query, args, err := r.sb.Select("artwork_id").
		From("artwork_likes").
		Where(squirrel.Eq{"member_id": memberID, "status": string(models.LikeStatusLike)}).
		Where("artwork_id = ANY(?)", pq.Array(artworkIDs)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		liked[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}
