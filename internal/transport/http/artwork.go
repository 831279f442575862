package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"fourcut/internal/domain/models"
	"fourcut/internal/middleware"
	"fourcut/internal/transport/http/dto"
	"fourcut/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const imageField = "image"

// CreateArtwork godoc
// @Summary Добавить работу в галерею
// @Description Загружает изображение и создает работу. Владелец галереи получает уведомление POST_ARTWORK.
// @Tags artworks
// @Accept multipart/form-data
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param title formData string true "Название (до 20 символов)"
// @Param content formData string true "Описание (до 70 символов)"
// @Param image formData file true "Изображение"
// @Success 201 {object} response.Response{data=dto.ArtworkResponse}
// @Failure 400 {object} response.ErrorResponse "IMAGE_NOT_FOUND_FROM_REQUEST, INVALID_IMAGE"
// @Failure 404 {object} response.ErrorResponse "GALLERY_NOT_FOUND"
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/artworks [post]
func (r *Routers) CreateArtwork(c echo.Context) error {
	const op = "http.routers.CreateArtwork"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, err := pathID(c, "gallery_id")
	if err != nil {
		return r.badRequest(c, log, err)
	}

	image, err := formImage(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	input := dto.ArtworkCreateInput{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		Image:   image,
	}
	if err := c.Validate(input); err != nil {
		return r.badRequest(c, log, err)
	}

	view, err := r.ArtworkService.Create(c.Request().Context(), memberID, galleryID, input)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewArtworkResponse(view, r.imageBaseURL)))
}

// ListArtworks godoc
// @Summary Работы галереи
// @Description Новые первыми. Поле liked заполняется для авторизованного зрителя.
// @Tags artworks
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Success 200 {object} response.Response{data=[]dto.ArtworkResponse}
// @Failure 404 {object} response.ErrorResponse "GALLERY_NOT_FOUND"
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Router /api/v1/galleries/{gallery_id}/artworks [get]
func (r *Routers) ListArtworks(c echo.Context) error {
	const op = "http.routers.ListArtworks"

	log := r.log.With(slog.String("op", op))

	galleryID, err := pathID(c, "gallery_id")
	if err != nil {
		return r.badRequest(c, log, err)
	}

	views, err := r.ArtworkService.List(c.Request().Context(), middleware.MemberID(c), galleryID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewArtworkListResponse(views, r.imageBaseURL)))
}

// TopArtworks godoc
// @Summary Четыре самые популярные работы
// @Tags artworks
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Success 200 {object} response.Response{data=[]dto.TopArtworkResponse}
// @Failure 404 {object} response.ErrorResponse "GALLERY_NOT_FOUND"
// @Router /api/v1/galleries/{gallery_id}/artworks/like [get]
func (r *Routers) TopArtworks(c echo.Context) error {
	const op = "http.routers.TopArtworks"

	log := r.log.With(slog.String("op", op))

	galleryID, err := pathID(c, "gallery_id")
	if err != nil {
		return r.badRequest(c, log, err)
	}

	views, err := r.ArtworkService.TopFour(c.Request().Context(), galleryID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewTopArtworkResponse(views, r.imageBaseURL)))
}

// GetArtwork godoc
// @Summary Получить работу
// @Tags artworks
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param artwork_id path int true "ID работы"
// @Success 200 {object} response.Response{data=dto.ArtworkResponse}
// @Failure 404 {object} response.ErrorResponse "ARTWORK_NOT_FOUND, ARTWORK_NOT_FOUND_FROM_GALLERY"
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Router /api/v1/galleries/{gallery_id}/artworks/{artwork_id} [get]
func (r *Routers) GetArtwork(c echo.Context) error {
	const op = "http.routers.GetArtwork"

	log := r.log.With(slog.String("op", op))

	galleryID, artworkID, err := artworkPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	view, err := r.ArtworkService.Get(c.Request().Context(), middleware.MemberID(c), galleryID, artworkID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewArtworkResponse(view, r.imageBaseURL)))
}

// UpdateArtwork godoc
// @Summary Изменить работу
// @Description Только автор работы. Отсутствующие поля формы не меняются; новое изображение заменяет старое.
// @Tags artworks
// @Accept multipart/form-data
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param artwork_id path int true "ID работы"
// @Param title formData string false "Название"
// @Param content formData string false "Описание"
// @Param image formData file false "Новое изображение"
// @Success 200 {object} response.Response{data=dto.ArtworkResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/artworks/{artwork_id} [patch]
func (r *Routers) UpdateArtwork(c echo.Context) error {
	const op = "http.routers.UpdateArtwork"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, artworkID, err := artworkPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	input, err := parseArtworkPatch(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}
	if err := c.Validate(input); err != nil {
		return r.badRequest(c, log, err)
	}

	view, err := r.ArtworkService.Update(c.Request().Context(), memberID, galleryID, artworkID, input)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewArtworkResponse(view, r.imageBaseURL)))
}

// DeleteArtwork godoc
// @Summary Удалить работу
// @Description Автор работы или владелец галереи. Вместе с работой удаляются ее лайки и комментарии.
// @Tags artworks
// @Param gallery_id path int true "ID галереи"
// @Param artwork_id path int true "ID работы"
// @Success 204 "Работа удалена"
// @Failure 403 {object} response.ErrorResponse "UNAUTHORIZED"
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/artworks/{artwork_id} [delete]
func (r *Routers) DeleteArtwork(c echo.Context) error {
	const op = "http.routers.DeleteArtwork"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, artworkID, err := artworkPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	if err := r.ArtworkService.Delete(c.Request().Context(), memberID, galleryID, artworkID); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleLike godoc
// @Summary Поставить или снять лайк
// @Description Переключает LIKE/CANCEL. Переход в LIKE уведомляет автора работы.
// @Tags artworks
// @Produce json
// @Param gallery_id path int true "ID галереи"
// @Param artwork_id path int true "ID работы"
// @Success 200 {object} response.Response{data=dto.LikeResponse}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "CLOSED_GALLERY"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/artworks/{artwork_id}/likes [put]
func (r *Routers) ToggleLike(c echo.Context) error {
	const op = "http.routers.ToggleLike"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	galleryID, artworkID, err := artworkPath(c)
	if err != nil {
		return r.badRequest(c, log, err)
	}

	like, err := r.LikeService.Toggle(c.Request().Context(), memberID, galleryID, artworkID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.LikeResponse{
		ArtworkID: like.ArtworkID,
		Status:    string(like.Status),
		Liked:     like.Status == models.LikeStatusLike,
	}))
}

func artworkPath(c echo.Context) (galleryID, artworkID int64, err error) {
	if galleryID, err = pathID(c, "gallery_id"); err != nil {
		return 0, 0, err
	}
	if artworkID, err = pathID(c, "artwork_id"); err != nil {
		return 0, 0, err
	}
	return galleryID, artworkID, nil
}

// formImage nil без ошибки, если файла в форме нет.
func formImage(c echo.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

// parseArtworkPatch различает отсутствующее поле формы и пустое значение.
func parseArtworkPatch(c echo.Context) (dto.ArtworkPatchInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return dto.ArtworkPatchInput{}, err
	}

	var input dto.ArtworkPatchInput
	if values, ok := form.Value["title"]; ok && len(values) > 0 {
		input.Title = &values[0]
	}
	if values, ok := form.Value["content"]; ok && len(values) > 0 {
		input.Content = &values[0]
	}
	if files := form.File[imageField]; len(files) > 0 {
		input.Image = files[0]
	}

	return input, nil
}
