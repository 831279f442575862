package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"fourcut/internal/domain/models"
	"fourcut/internal/transport/http/dto"
	"fourcut/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type GalleryService interface {
	Open(ctx context.Context, memberID int64, req dto.OpenGalleryRequest) (models.Gallery, error)
	Get(ctx context.Context, galleryID int64) (models.Gallery, error)
	Patch(ctx context.Context, memberID int64, req dto.PatchGalleryRequest) (models.Gallery, error)
	Close(ctx context.Context, memberID int64) error
}

type ArtworkService interface {
	Create(ctx context.Context, memberID, galleryID int64, input dto.ArtworkCreateInput) (models.ArtworkView, error)
	Get(ctx context.Context, viewerID, galleryID, artworkID int64) (models.ArtworkView, error)
	List(ctx context.Context, viewerID, galleryID int64) ([]models.ArtworkView, error)
	TopFour(ctx context.Context, galleryID int64) ([]models.ArtworkView, error)
	Update(ctx context.Context, memberID, galleryID, artworkID int64, input dto.ArtworkPatchInput) (models.ArtworkView, error)
	Delete(ctx context.Context, memberID, galleryID, artworkID int64) error
}

type LikeService interface {
	Toggle(ctx context.Context, memberID, galleryID, artworkID int64) (models.ArtworkLike, error)
}

type CommentService interface {
	CreateOnGallery(ctx context.Context, memberID, galleryID int64, content string) (models.CommentView, error)
	CreateOnArtwork(ctx context.Context, memberID, galleryID, artworkID int64, content string) (models.CommentView, error)
	Page(ctx context.Context, galleryID int64, page, size int) (models.CommentPage, error)
	PageForArtwork(ctx context.Context, galleryID, artworkID int64, page, size int) (models.CommentPage, error)
	Modify(ctx context.Context, galleryID, commentID, memberID int64, content *string) (models.CommentView, error)
	Delete(ctx context.Context, galleryID, commentID, memberID int64) error
}

type AlarmService interface {
	MarkRead(ctx context.Context, memberID, alarmID int64) error
	ListForMember(ctx context.Context, memberID int64, filter string, page, size int) (models.AlarmPage, error)
	UnreadCount(ctx context.Context, memberID int64) (int64, error)
}

type Routers struct {
	log            *slog.Logger
	imageBaseURL   string
	GalleryService GalleryService
	ArtworkService ArtworkService
	LikeService    LikeService
	CommentService CommentService
	AlarmService   AlarmService
}

func NewRouter(
	log *slog.Logger,
	imageBaseURL string,
	galleryService GalleryService,
	artworkService ArtworkService,
	likeService LikeService,
	commentService CommentService,
	alarmService AlarmService,
) *Routers {
	return &Routers{
		log:            log,
		imageBaseURL:   imageBaseURL,
		GalleryService: galleryService,
		ArtworkService: artworkService,
		LikeService:    likeService,
		CommentService: commentService,
		AlarmService:   alarmService,
	}
}

var errInvalidID = errors.New("path id must be a positive integer")

// Health godoc
// @Summary Проверка живости сервиса
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.MessageResponse("ok"))
}

// fail пишет доменную ошибку в ответ. Неожиданные ошибки логируются целиком,
// клиенту уходит только internal_error.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	res := response.FromError(err)
	if res.StatusCode == http.StatusInternalServerError {
		log.Error("request failed", slog.Any("err", err))
	} else {
		log.Debug("request rejected", slog.String("code", res.Error), slog.Any("err", err))
	}
	return c.JSON(res.StatusCode, res)
}

func (r *Routers) badRequest(c echo.Context, log *slog.Logger, err error) error {
	log.Debug("invalid request", slog.Any("err", err))
	return c.JSON(http.StatusBadRequest, response.InvalidRequest(err.Error()))
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// pageParams читает page и size; отсутствующие параметры дают 0 и нормализуются сервисом.
func pageParams(c echo.Context) (page, size int, err error) {
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("size", &size).
		BindError()
	return page, size, err
}
