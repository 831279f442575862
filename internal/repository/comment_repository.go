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

var commentViewColumns = []string{
	"c.id",
	"c.gallery_id",
	"c.artwork_id",
	"c.member_id",
	"c.content",
	"c.created_at",
	"c.updated_at",
	"m.nickname",
	"m.profile",
}

type CommentRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewCommentRepo(db *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{
		db: db,
		sb: psql,
	}
}

// CreateComment сохраняет комментарий; ArtworkID == nil означает комментарий к галерее
func (r *CommentRepo) CreateComment(ctx context.Context, comment models.Comment) (int64, error) {
	const op = "repository.CommentRepo.CreateComment"

	query, args, err := r.sb.Insert("comments").
		Columns("gallery_id", "artwork_id", "member_id", "content").
		Values(comment.GalleryID, comment.ArtworkID, comment.MemberID, comment.Content).
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

func (r *CommentRepo) GetCommentByID(ctx context.Context, commentID int64) (models.Comment, error) {
	const op = "repository.CommentRepo.GetCommentByID"

	query, args, err := r.sb.Select("id", "gallery_id", "artwork_id", "member_id", "content", "created_at", "updated_at").
		From("comments").
		Where(squirrel.Eq{"id": commentID}).
		ToSql()
	if err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	var comment models.Comment
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&comment.ID,
		&comment.GalleryID,
		&comment.ArtworkID,
		&comment.MemberID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, fmt.Errorf("%s: %w", op, storage.ErrCommentNotFound)
		}
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	return comment, nil
}

// GetCommentView комментарий с никнеймом и профилем автора
func (r *CommentRepo) GetCommentView(ctx context.Context, commentID int64) (models.CommentView, error) {
	const op = "repository.CommentRepo.GetCommentView"

	query, args, err := r.viewQuery().
		Where(squirrel.Eq{"c.id": commentID}).
		ToSql()
	if err != nil {
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	view, err := scanCommentView(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CommentView{}, fmt.Errorf("%s: %w", op, storage.ErrCommentNotFound)
		}
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// ListGalleryComments страница всех комментариев галереи, включая комментарии к работам
func (r *CommentRepo) ListGalleryComments(ctx context.Context, galleryID int64, page, size int) ([]models.CommentView, int64, error) {
	const op = "repository.CommentRepo.ListGalleryComments"

	views, total, err := r.listPage(ctx, squirrel.Eq{"c.gallery_id": galleryID}, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return views, total, nil
}

// ListArtworkComments страница комментариев к одной работе
func (r *CommentRepo) ListArtworkComments(ctx context.Context, artworkID int64, page, size int) ([]models.CommentView, int64, error) {
	const op = "repository.CommentRepo.ListArtworkComments"

	views, total, err := r.listPage(ctx, squirrel.Eq{"c.artwork_id": artworkID}, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return views, total, nil
}

func (r *CommentRepo) UpdateCommentContent(ctx context.Context, commentID int64, content string) error {
	const op = "repository.CommentRepo.UpdateCommentContent"

	query, args, err := r.sb.Update("comments").
		Set("content", content).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": commentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrCommentNotFound)
	}

	return nil
}

func (r *CommentRepo) DeleteComment(ctx context.Context, commentID int64) error {
	const op = "repository.CommentRepo.DeleteComment"

	query, args, err := r.sb.Delete("comments").
		Where(squirrel.Eq{"id": commentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrCommentNotFound)
	}

	return nil
}

func (r *CommentRepo) viewQuery() squirrel.SelectBuilder {
	return r.sb.Select(commentViewColumns...).
		From("comments c").
		Join("members m ON m.id = c.member_id")
}

func (r *CommentRepo) listPage(ctx context.Context, where squirrel.Eq, page, size int) ([]models.CommentView, int64, error) {
	q := conn(ctx, r.db)

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").
		From("comments c").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := r.viewQuery().
		Where(where).
		OrderBy("c.id DESC").
		Limit(uint64(size)).
		Offset(offset(page, size)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	views := make([]models.CommentView, 0, size)
	for rows.Next() {
		view, err := scanCommentView(rows)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}

	return views, total, rows.Err()
}

func scanCommentView(row pgx.Row) (models.CommentView, error) {
	var view models.CommentView
	err := row.Scan(
		&view.ID,
		&view.GalleryID,
		&view.ArtworkID,
		&view.MemberID,
		&view.Content,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.Nickname,
		&view.Profile,
	)
	return view, err
}
