package repository

import (
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Repository struct {
	Tx      *TxManager
	Member  *MemberRepo
	Gallery *GalleryRepo
	Artwork *ArtworkRepo
	Like    *LikeRepo
	Comment *CommentRepo
	Alarm   *AlarmRepo
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		Tx:      NewTxManager(db),
		Member:  NewMemberRepo(db),
		Gallery: NewGalleryRepo(db),
		Artwork: NewArtworkRepo(db),
		Like:    NewLikeRepo(db),
		Comment: NewCommentRepo(db),
		Alarm:   NewAlarmRepo(db),
	}
}

// offset для страниц, нумерация которых начинается с 1. Результат не выходит за bigint.
func offset(page, size int) uint64 {
	if page < 1 || size < 1 {
		return 0
	}

	skipped, per := uint64(page-1), uint64(size)
	if skipped > math.MaxInt64/per {
		return math.MaxInt64
	}
	return skipped * per
}
