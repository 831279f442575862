package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeStatus_Toggled(t *testing.T) {
	assert.Equal(t, LikeStatusCancel, LikeStatusLike.Toggled())
	assert.Equal(t, LikeStatusLike, LikeStatusCancel.Toggled())
	assert.Equal(t, LikeStatusLike, LikeStatusLike.Toggled().Toggled())
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		total     int64
		wantPages int
	}{
		{name: "empty", page: 1, size: 10, total: 0, wantPages: 0},
		{name: "exact", page: 1, size: 10, total: 20, wantPages: 2},
		{name: "remainder", page: 3, size: 10, total: 21, wantPages: 3},
		{name: "zero size", page: 1, size: 0, total: 5, wantPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.page, tt.size, tt.total)

			assert.Equal(t, tt.wantPages, info.TotalPages)
			assert.Equal(t, tt.total, info.TotalElements)
			assert.Equal(t, tt.page, info.Page)
		})
	}
}

func TestParseAlarmFilter(t *testing.T) {
	tests := []struct {
		raw     string
		want    AlarmType
		wantErr bool
	}{
		{raw: "", want: ""},
		{raw: "ALL", want: ""},
		{raw: " like_artwork ", want: AlarmLikeArtwork},
		{raw: "COMMENT_GALLERY", want: AlarmCommentGallery},
		{raw: "FOLLOW", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			filter, err := ParseAlarmFilter(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter.Type)
		})
	}
}

func TestOwnership(t *testing.T) {
	gallery := Gallery{MemberID: 1, Status: GalleryOpen}
	assert.True(t, gallery.IsOwner(1))
	assert.True(t, gallery.IsOpen())
	assert.False(t, Gallery{Status: GalleryClosed}.IsOpen())

	artwork := Artwork{GalleryID: 4, MemberID: 2}
	assert.True(t, artwork.BelongsTo(4))
	assert.False(t, artwork.IsOwner(1))

	assert.False(t, Member{Status: MemberDeleted}.IsActive())
}
