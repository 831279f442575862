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

// агрегаты считаются при чтении, отдельных счетчиков в таблице нет
var artworkViewColumns = []string{
	"a.id",
	"a.gallery_id",
	"a.member_id",
	"a.title",
	"a.content",
	"a.image_path",
	"a.created_at",
	"a.updated_at",
	"m.nickname",
	"(SELECT COUNT(*) FROM artwork_likes l WHERE l.artwork_id = a.id AND l.status = 'LIKE') AS like_count",
	"(SELECT COUNT(*) FROM comments c WHERE c.artwork_id = a.id) AS comment_count",
}

type ArtworkRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewArtworkRepo(db *pgxpool.Pool) *ArtworkRepo {
	return &ArtworkRepo{
		db: db,
		sb: psql,
	}
}

// CreateArtwork сохраняет работу и возвращает её ID
func (r *ArtworkRepo) CreateArtwork(ctx context.Context, artwork models.Artwork) (int64, error) {
	const op = "repository.ArtworkRepo.CreateArtwork"

	query, args, err := r.sb.Insert("artworks").
		Columns(
			"gallery_id",
			"member_id",
			"title",
			"content",
			"image_path",
		).
		Values(
			artwork.GalleryID,
			artwork.MemberID,
			artwork.Title,
			artwork.Content,
			artwork.ImagePath,
		).
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

// GetArtworkByID возвращает строку работы без агрегатов
func (r *ArtworkRepo) GetArtworkByID(ctx context.Context, artworkID int64) (models.Artwork, error) {
	const op = "repository.ArtworkRepo.GetArtworkByID"

	query, args, err := r.sb.Select(
		"id",
		"gallery_id",
		"member_id",
		"title",
		"content",
		"image_path",
		"created_at",
		"updated_at",
	).
		From("artworks").
		Where(squirrel.Eq{"id": artworkID}).
		ToSql()
	if err != nil {
		return models.Artwork{}, fmt.Errorf("%s: %w", op, err)
	}

	var artwork models.Artwork
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&artwork.ID,
		&artwork.GalleryID,
		&artwork.MemberID,
		&artwork.Title,
		&artwork.Content,
		&artwork.ImagePath,
		&artwork.CreatedAt,
		&artwork.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Artwork{}, fmt.Errorf("%s: %w", op, storage.ErrArtworkNotFound)
		}
		return models.Artwork{}, fmt.Errorf("%s: %w", op, err)
	}

	return artwork, nil
}

// GetArtworkView возвращает работу с никнеймом автора, числом лайков и комментариев
func (r *ArtworkRepo) GetArtworkView(ctx context.Context, artworkID int64) (models.ArtworkView, error) {
	const op = "repository.ArtworkRepo.GetArtworkView"

	query, args, err := r.viewQuery().
		Where(squirrel.Eq{"a.id": artworkID}).
		ToSql()
	if err != nil {
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	view, err := scanArtworkView(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ArtworkView{}, fmt.Errorf("%s: %w", op, storage.ErrArtworkNotFound)
		}
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// ListArtworkViews все работы галереи, новые первыми
func (r *ArtworkRepo) ListArtworkViews(ctx context.Context, galleryID int64) ([]models.ArtworkView, error) {
	const op = "repository.ArtworkRepo.ListArtworkViews"

	query, args, err := r.viewQuery().
		Where(squirrel.Eq{"a.gallery_id": galleryID}).
		OrderBy("a.created_at DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := r.queryViews(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

// TopArtworkViews работы с наибольшим числом лайков; при равенстве выше более новые
func (r *ArtworkRepo) TopArtworkViews(ctx context.Context, galleryID int64, limit int) ([]models.ArtworkView, error) {
	const op = "repository.ArtworkRepo.TopArtworkViews"

	query, args, err := r.viewQuery().
		Where(squirrel.Eq{"a.gallery_id": galleryID}).
		OrderBy("like_count DESC", "a.created_at DESC", "a.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := r.queryViews(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

// UpdateArtwork перезаписывает title, content и image_path
func (r *ArtworkRepo) UpdateArtwork(ctx context.Context, artwork models.Artwork) error {
	const op = "repository.ArtworkRepo.UpdateArtwork"

	query, args, err := r.sb.Update("artworks").
		Set("title", artwork.Title).
		Set("content", artwork.Content).
		Set("image_path", artwork.ImagePath).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": artwork.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrArtworkNotFound)
	}

	return nil
}

// DeleteArtwork удаляет работу вместе с лайками и комментариями к ней.
// Вызывать внутри транзакции.
func (r *ArtworkRepo) DeleteArtwork(ctx context.Context, artworkID int64) error {
	const op = "repository.ArtworkRepo.DeleteArtwork"

	q := conn(ctx, r.db)

	for _, table := range []string{"artwork_likes", "comments"} {
		query, args, err := r.sb.Delete(table).
			Where(squirrel.Eq{"artwork_id": artworkID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if _, err := q.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: delete %s: %w", op, table, err)
		}
	}

	query, args, err := r.sb.Delete("artworks").
		Where(squirrel.Eq{"id": artworkID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrArtworkNotFound)
	}

	return nil
}

func (r *ArtworkRepo) viewQuery() squirrel.SelectBuilder {
	return r.sb.Select(artworkViewColumns...).
		From("artworks a").
		Join("members m ON m.id = a.member_id")
}

func (r *ArtworkRepo) queryViews(ctx context.Context, query string, args []interface{}) ([]models.ArtworkView, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]models.ArtworkView, 0)
	for rows.Next() {
		view, err := scanArtworkView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, rows.Err()
}

func scanArtworkView(row pgx.Row) (models.ArtworkView, error) {
	var view models.ArtworkView
	err := row.Scan(
		&view.ID,
		&view.GalleryID,
		&view.MemberID,
		&view.Title,
		&view.Content,
		&view.ImagePath,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.Nickname,
		&view.LikeCount,
		&view.CommentCount,
	)
	return view, err
}
