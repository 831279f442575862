package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) GetMemberByID(ctx context.Context, memberID int64) (models.Member, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(models.Member), args.Error(1)
}

func TestAuth_Resolve(t *testing.T) {
	ctx := context.Background()
	active := models.Member{ID: 1, Nickname: "kim", Status: models.MemberActive}

	tests := []struct {
		name      string
		mockSetup func(m *MockMemberRepository)
		want      models.Member
		wantErr   error
	}{
		{
			name: "active member",
			mockSetup: func(m *MockMemberRepository) {
				m.On("GetMemberByID", ctx, int64(1)).Return(active, nil).Once()
			},
			want: active,
		},
		{
			name: "unknown member",
			mockSetup: func(m *MockMemberRepository) {
				m.On("GetMemberByID", ctx, int64(1)).Return(models.Member{}, storage.ErrMemberNotFound).Once()
			},
			wantErr: errs.ErrMemberNotFound,
		},
		{
			name: "deleted member",
			mockSetup: func(m *MockMemberRepository) {
				m.On("GetMemberByID", ctx, int64(1)).
					Return(models.Member{ID: 1, Status: models.MemberDeleted}, nil).Once()
			},
			wantErr: errs.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := new(MockMemberRepository)
			tt.mockSetup(members)
			a := New(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})), members, time.Minute)

			member, err := a.Resolve(ctx, 1)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, member)
			}
			members.AssertExpectations(t)
		})
	}
}

func TestAuth_Resolve_Caches(t *testing.T) {
	ctx := context.Background()
	members := new(MockMemberRepository)
	members.On("GetMemberByID", ctx, int64(1)).
		Return(models.Member{ID: 1, Status: models.MemberActive}, nil).Once()

	a := New(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})), members, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := a.Resolve(ctx, 1)
		require.NoError(t, err)
	}
	members.AssertNumberOfCalls(t, "GetMemberByID", 1)

	a.Forget(1)
	members.On("GetMemberByID", ctx, int64(1)).
		Return(models.Member{}, errors.New("connection refused")).Once()

	_, err := a.Resolve(ctx, 1)
	assert.Error(t, err)
	members.AssertNumberOfCalls(t, "GetMemberByID", 2)
}
