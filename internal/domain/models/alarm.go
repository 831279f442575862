package models

import (
	"fmt"
	"strings"
	"time"
)

type AlarmType string

const (
	AlarmPostArtwork    AlarmType = "POST_ARTWORK"
	AlarmLikeArtwork    AlarmType = "LIKE_ARTWORK"
	AlarmCommentGallery AlarmType = "COMMENT_GALLERY"
	AlarmCommentArtwork AlarmType = "COMMENT_ARTWORK"
)

// AlarmFilter пустой фильтр означает все типы.
type AlarmFilter struct {
	Type AlarmType
}

func ParseAlarmFilter(raw string) (AlarmFilter, error) {
	switch t := AlarmType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case "", "ALL":
		return AlarmFilter{}, nil
	case AlarmPostArtwork, AlarmLikeArtwork, AlarmCommentGallery, AlarmCommentArtwork:
		return AlarmFilter{Type: t}, nil
	default:
		return AlarmFilter{}, fmt.Errorf("unknown alarm filter %q", raw)
	}
}

// Alarm уведомление. Создается только через fan-out, меняется только флаг прочтения.
type Alarm struct {
	ID         int64     `json:"alarm_id"`
	ReceiverID int64     `json:"receiver_id"`
	SenderID   int64     `json:"sender_id"`
	Type       AlarmType `json:"alarm_type"`
	GalleryID  *int64    `json:"gallery_id,omitempty"`
	ArtworkID  *int64    `json:"artwork_id,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// AlarmView уведомление с никнеймом отправителя и названием работы на момент чтения.
type AlarmView struct {
	Alarm
	SenderNickname string `json:"sender_nickname"`
	ArtworkTitle   string `json:"artwork_title,omitempty"`
}

// AlarmEvent нормализованное событие от мутаций, которое превращается в строку Alarm.
type AlarmEvent struct {
	SenderID   int64
	ReceiverID int64
	Type       AlarmType
	GalleryID  *int64
	ArtworkID  *int64
}

type AlarmPage struct {
	Alarms   []AlarmView `json:"alarms"`
	PageInfo PageInfo    `json:"page_info"`
}
