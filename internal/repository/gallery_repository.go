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
)

const openGalleryConstraint = "ux_galleries_open_member"

var galleryColumns = []string{
	"id",
	"member_id",
	"title",
	"content",
	"status",
	"created_at",
	"updated_at",
}

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: psql,
	}
}

// CreateGallery создает новую галерею и возвращает её ID. Вторая открытая галерея
// того же участника отсекается частичным уникальным индексом.
func (r *GalleryRepo) CreateGallery(ctx context.Context, gallery models.Gallery) (int64, error) {
	const op = "repository.GalleryRepo.CreateGallery"

	query, args, err := r.sb.Insert("galleries").
		Columns(
			"member_id",
			"title",
			"content",
			"status",
		).
		Values(
			gallery.MemberID,
			gallery.Title,
			gallery.Content,
			string(gallery.Status),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if postgresql.IsUniqueViolation(err, openGalleryConstraint) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrGalleryExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetGalleryByID возвращает галерею по ID вне зависимости от статуса
func (r *GalleryRepo) GetGalleryByID(ctx context.Context, galleryID int64) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GetGalleryByID"

	return r.getOne(ctx, op, squirrel.Eq{"id": galleryID})
}

// GetOpenGalleryByMember возвращает открытую галерею участника
func (r *GalleryRepo) GetOpenGalleryByMember(ctx context.Context, memberID int64) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GetOpenGalleryByMember"

	return r.getOne(ctx, op, squirrel.Eq{"member_id": memberID, "status": string(models.GalleryOpen)})
}

func (r *GalleryRepo) ExistsOpenGallery(ctx context.Context, memberID int64) (bool, error) {
	const op = "repository.GalleryRepo.ExistsOpenGallery"

	query, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("galleries").
		Where(squirrel.Eq{"member_id": memberID, "status": string(models.GalleryOpen)}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// UpdateGallery перезаписывает title и content
func (r *GalleryRepo) UpdateGallery(ctx context.Context, gallery models.Gallery) error {
	const op = "repository.GalleryRepo.UpdateGallery"

	query, args, err := r.sb.Update("galleries").
		Set("title", gallery.Title).
		Set("content", gallery.Content).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": gallery.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	return nil
}

// UpdateGalleryStatus обновляет только статус галереи
func (r *GalleryRepo) UpdateGalleryStatus(ctx context.Context, galleryID int64, status models.GalleryStatus) error {
	const op = "repository.GalleryRepo.UpdateGalleryStatus"

	query, args, err := r.sb.Update("galleries").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": galleryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	return nil
}

func (r *GalleryRepo) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (models.Gallery, error) {
	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(where).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	var gallery models.Gallery
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&gallery.ID,
		&gallery.MemberID,
		&gallery.Title,
		&gallery.Content,
		&gallery.Status,
		&gallery.CreatedAt,
		&gallery.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}
