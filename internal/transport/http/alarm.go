package http

import (
	"log/slog"
	"net/http"

	"fourcut/internal/middleware"
	"fourcut/internal/transport/http/dto"
	"fourcut/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListMyAlarms godoc
// @Summary Мои уведомления
// @Description Новые первыми. filter: ALL, POST_ARTWORK, LIKE_ARTWORK, COMMENT_GALLERY, COMMENT_ARTWORK.
// @Tags alarms
// @Produce json
// @Param page query int false "Номер страницы, с 1"
// @Param size query int false "Размер страницы, до 100"
// @Param filter query string false "Тип уведомлений"
// @Success 200 {object} response.Response{data=dto.AlarmPageResponse}
// @Failure 400 {object} response.ErrorResponse "INVALID_ALARM_FILTER"
// @Security ApiKeyAuth
// @Router /api/v1/members/me/alarms [get]
func (r *Routers) ListMyAlarms(c echo.Context) error {
	const op = "http.routers.ListMyAlarms"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	var query dto.AlarmListQuery
	if err := c.Bind(&query); err != nil {
		return r.badRequest(c, log, err)
	}

	alarms, err := r.AlarmService.ListForMember(c.Request().Context(), memberID, query.Filter, query.Page, query.Size)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewAlarmPageResponse(alarms)))
}

// ReadAlarm godoc
// @Summary Отметить уведомление прочитанным
// @Description Повторный вызов ничего не меняет.
// @Tags alarms
// @Produce json
// @Param alarm_id path int true "ID уведомления"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Чужое уведомление"
// @Failure 404 {object} response.ErrorResponse "ALARM_NOT_FOUND"
// @Security ApiKeyAuth
// @Router /api/v1/members/me/alarms/{alarm_id} [patch]
func (r *Routers) ReadAlarm(c echo.Context) error {
	const op = "http.routers.ReadAlarm"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	alarmID, err := pathID(c, "alarm_id")
	if err != nil {
		return r.badRequest(c, log, err)
	}

	if err := r.AlarmService.MarkRead(c.Request().Context(), memberID, alarmID); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("alarm marked as read"))
}

// UnreadAlarmCount godoc
// @Summary Число непрочитанных уведомлений
// @Tags alarms
// @Produce json
// @Success 200 {object} response.Response{data=dto.UnreadCountResponse}
// @Security ApiKeyAuth
// @Router /api/v1/members/me/alarms/unread-count [get]
func (r *Routers) UnreadAlarmCount(c echo.Context) error {
	const op = "http.routers.UnreadAlarmCount"

	memberID := middleware.MemberID(c)
	log := r.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	count, err := r.AlarmService.UnreadCount(c.Request().Context(), memberID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.UnreadCountResponse{Count: count}))
}
