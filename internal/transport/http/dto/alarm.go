package dto

import (
	"time"

	"fourcut/internal/domain/models"
)

type AlarmListQuery struct {
	Page   int    `query:"page"`
	Size   int    `query:"size"`
	Filter string `query:"filter"`
}

type AlarmResponse struct {
	AlarmID        int64     `json:"alarm_id"`
	AlarmType      string    `json:"alarm_type"`
	SenderID       int64     `json:"sender_id"`
	SenderNickname string    `json:"sender_nickname"`
	GalleryID      *int64    `json:"gallery_id,omitempty"`
	ArtworkID      *int64    `json:"artwork_id,omitempty"`
	ArtworkTitle   string    `json:"artwork_title,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

type AlarmPageResponse struct {
	Alarms   []AlarmResponse `json:"alarms"`
	PageInfo models.PageInfo `json:"page_info"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func NewAlarmPageResponse(p models.AlarmPage) AlarmPageResponse {
	alarms := make([]AlarmResponse, 0, len(p.Alarms))
	for _, a := range p.Alarms {
		alarms = append(alarms, AlarmResponse{
			AlarmID:        a.ID,
			AlarmType:      string(a.Type),
			SenderID:       a.SenderID,
			SenderNickname: a.SenderNickname,
			GalleryID:      a.GalleryID,
			ArtworkID:      a.ArtworkID,
			ArtworkTitle:   a.ArtworkTitle,
			Read:           a.Read,
			CreatedAt:      a.CreatedAt,
		})
	}

	return AlarmPageResponse{
		Alarms:   alarms,
		PageInfo: p.PageInfo,
	}
}
