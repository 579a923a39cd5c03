//go:build unit

package repository

import (
	"context"
	"testing"

	"meeting-room-booking/internal/infra"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRoomWriteQueries struct {
	mock.Mock
}

func (m *MockRoomWriteQueries) CreateRoom(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateRoomParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockRoomWriteQueries) UpdateRoom(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateRoomParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestRoomRepository_Create(t *testing.T) {
	rm := builder.NewRoomBuilder().BuildDomain()

	mockQueries := new(MockRoomWriteQueries)
	mockQueries.On("CreateRoom", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateRoomParams) bool {
		return p.ID == rm.ID() &&
			p.Capacity == int32(rm.Capacity()) &&
			assert.ObjectsAreEqual(rm.Amenities().Slice(), p.Amenities) &&
			p.IsActive
	})).Return(nil)

	err := NewRoomRepository(mockQueries, nil).Create(context.Background(), rm)

	assert.NoError(t, err)
	mockQueries.AssertExpectations(t)
}

func TestRoomRepository_Update(t *testing.T) {
	rm := builder.NewRoomBuilder().BuildDomain()

	tests := []struct {
		name      string
		affected  int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "missing row", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockRoomWriteQueries)
			mockQueries.On("UpdateRoom", mock.Anything, mock.Anything, mock.Anything).Return(tt.affected, tt.mockError)

			err := NewRoomRepository(mockQueries, nil).Update(context.Background(), rm)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}
