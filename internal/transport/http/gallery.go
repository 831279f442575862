package http

import (
	"log/slog"
	"net/http"

	"fourcut/internal/middleware"
	"fourcut/internal/transport/http/dto"
	"fourcut/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// OpenGallery godoc
// @Summary Открыть галерею
// @Description Создает OPEN галерею вызывающего. У участника может быть только одна открытая галерея.
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body dto.OpenGalleryRequest true "Название и описание"
// @Success 201 {object} response.Response{data=dto.GalleryResponse}
// @Failure 400 {object} response.ErrorResponse "Пустое название или описание"
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "OPEN_GALLERY_EXIST"
// @Security ApiKeyAuth
// @Router /api/v1/galleries [post]
func (r *Routers) OpenGallery(c echo.Context) error {
	const op = "http.routers.OpenGallery"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	var req dto.OpenGalleryRequest
	if err := c.Bind(&req); err != nil {
		return r.badRequest(c, log, err)
	}
	if err := c.Validate(req); err != nil {
		return r.badRequest(c, log, err)
	}

	gallery, err := r.GalleryService.Open(c.Request().Context(), memberID, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewGalleryResponse(gallery)))
}

// GetGallery godoc
// @Summary Получить галерею
// @Tags galleries
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Success 200 {object} response.Response{data=dto.GalleryResponse}
// @Failure 404 {object} response.ErrorResponse "GALLERY_NOT_FOUND"
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Router /api/v1/galleries/{gallery_id} [get]
func (r *Routers) GetGallery(c echo.Context) error {
	const op = "http.routers.GetGallery"

	log := r.log.With(slog.String("op", op))

	galleryID, err := pathID(c, "gallery_id")
	if err != nil {
		return r.badRequest(c, log, err)
	}

	gallery, err := r.GalleryService.Get(c.Request().Context(), galleryID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewGalleryResponse(gallery)))
}

// PatchMyGallery godoc
// @Summary Изменить свою открытую галерею
// @Description Переданные поля перезаписываются, отсутствующие остаются без изменений.
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body dto.PatchGalleryRequest true "Поля для изменения"
// @Success 200 {object} response.Response{data=dto.GalleryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Нет открытой галереи"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/me [patch]
func (r *Routers) PatchMyGallery(c echo.Context) error {
	const op = "http.routers.PatchMyGallery"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	var req dto.PatchGalleryRequest
	if err := c.Bind(&req); err != nil {
		return r.badRequest(c, log, err)
	}
	if err := c.Validate(req); err != nil {
		return r.badRequest(c, log, err)
	}

	gallery, err := r.GalleryService.Patch(c.Request().Context(), memberID, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewGalleryResponse(gallery)))
}

// CloseMyGallery godoc
// @Summary Закрыть свою галерею
// @Tags galleries
// @Success 204 "Галерея закрыта"
// @Failure 404 {object} response.ErrorResponse "Нет открытой галереи"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/me [delete]
func (r *Routers) CloseMyGallery(c echo.Context) error {
	const op = "http.routers.CloseMyGallery"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	if err := r.GalleryService.Close(c.Request().Context(), memberID); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
