package http

import (
	"log/slog"
	"net/http"

	"fourcut/internal/middleware"
	"fourcut/internal/transport/http/dto"
	"fourcut/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// CommentOnGallery godoc
// @Summary Комментарий к галерее
// @Tags comments
// @Accept json
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param request body dto.CommentRequest true "Текст (1-30 символов)"
// @Success 201 {object} response.Response{data=dto.CommentResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "GALLERY_NOT_FOUND"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/comments [post]
func (r *Routers) CommentOnGallery(c echo.Context) error {
	const op = "http.routers.CommentOnGallery"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, err := pathID(c, "gallery_id")
	if err != nil {
		return r.badRequest(c, log, err)
	}

	var req dto.CommentRequest
	if err := c.Bind(&req); err != nil {
		return r.badRequest(c, log, err)
	}
	if err := c.Validate(req); err != nil {
		return r.badRequest(c, log, err)
	}

	view, err := r.CommentService.CreateOnGallery(c.Request().Context(), memberID, galleryID, *req.Content)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewCommentResponse(view)))
}

// CommentOnArtwork godoc
// @Summary Комментарий к работе
// @Description Владелец галереи и автор работы (если это другой участник) получают COMMENT_ARTWORK.
// @Tags comments
// @Accept json
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param artwork_id path int true "ID работы"
// @Param request body dto.CommentRequest true "Текст (1-30 символов)"
// @Success 201 {object} response.Response{data=dto.CommentResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/artworks/{artwork_id}/comments [post]
func (r *Routers) CommentOnArtwork(c echo.Context) error {
	const op = "http.routers.CommentOnArtwork"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, artworkID, err := artworkPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	var req dto.CommentRequest
	if err := c.Bind(&req); err != nil {
		return r.badRequest(c, log, err)
	}
	if err := c.Validate(req); err != nil {
		return r.badRequest(c, log, err)
	}

	view, err := r.CommentService.CreateOnArtwork(c.Request().Context(), memberID, galleryID, artworkID, *req.Content)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewCommentResponse(view)))
}

// GalleryComments godoc
// @Summary Комментарии галереи
// @Description Все комментарии галереи, включая комментарии к работам, новые первыми.
// @Tags comments
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param page query int false "Номер страницы, с 1"
// @Param size query int false "Размер страницы, до 100"
// @Success 200 {object} response.Response{data=dto.CommentPageResponse}
// @Failure 404 {object} response.ErrorResponse "GALLERY_NOT_FOUND"
// @Router /api/v1/galleries/{gallery_id}/comments [get]
func (r *Routers) GalleryComments(c echo.Context) error {
	const op = "http.routers.GalleryComments"

	log := r.log.With(slog.String("op", op))

	galleryID, err := pathID(c, "gallery_id")
	if err != nil {
		return r.badRequest(c, log, err)
	}

	page, size, err := pageParams(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	comments, err := r.CommentService.Page(c.Request().Context(), galleryID, page, size)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewCommentPageResponse(comments)))
}

// ArtworkComments godoc
// @Summary Комментарии к работе
// @Tags comments
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param artwork_id path int true "ID работы"
// @Param page query int false "Номер страницы, с 1"
// @Param size query int false "Размер страницы, до 100"
// @Success 200 {object} response.Response{data=dto.CommentPageResponse}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Router /api/v1/galleries/{gallery_id}/artworks/{artwork_id}/comments [get]
func (r *Routers) ArtworkComments(c echo.Context) error {
	const op = "http.routers.ArtworkComments"

	log := r.log.With(slog.String("op", op))

	galleryID, artworkID, err := artworkPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	page, size, err := pageParams(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	comments, err := r.CommentService.PageForArtwork(c.Request().Context(), galleryID, artworkID, page, size)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewCommentPageResponse(comments)))
}

// ModifyComment godoc
// @Summary Изменить комментарий
// @Description Только автор. Без поля content комментарий не меняется.
// @Tags comments
// @Accept json
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param comment_id path int true "ID комментария"
// @Param request body dto.CommentPatchRequest true "Новый текст"
// @Success 200 {object} response.Response{data=dto.CommentResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse "COMMENT_NOT_FOUND, COMMENT_NOT_FOUND_FROM_GALLERY"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/comments/{comment_id} [patch]
func (r *Routers) ModifyComment(c echo.Context) error {
	const op = "http.routers.ModifyComment"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, commentID, err := commentPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	var req dto.CommentPatchRequest
	if err := c.Bind(&req); err != nil {
		return r.badRequest(c, log, err)
	}
	if err := c.Validate(req); err != nil {
		return r.badRequest(c, log, err)
	}

	view, err := r.CommentService.Modify(c.Request().Context(), galleryID, commentID, memberID, req.Content)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewCommentResponse(view)))
}

// DeleteComment godoc
// @Summary Удалить комментарий
// @Description Автор комментария или владелец галереи.
// @Tags comments
// @Param gallery_id path int true "ID галереи"
// @Param comment_id path int true "ID комментария"
// @Success 204 "Комментарий удален"
// @Failure 403 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/comments/{comment_id} [delete]
func (r *Routers) DeleteComment(c echo.Context) error {
	const op = "http.routers.DeleteComment"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, commentID, err := commentPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	if err := r.CommentService.Delete(c.Request().Context(), galleryID, commentID, memberID); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func commentPath(c echo.Context) (galleryID, commentID int64, err error) {
	if galleryID, err = pathID(c, "gallery_id"); err != nil {
		return 0, 0, err
	}
	if commentID, err = pathID(c, "comment_id"); err != nil {
		return 0, 0, err
	}
	return galleryID, commentID, nil
}
