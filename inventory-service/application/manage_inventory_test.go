package application

import (
	"context"
	"testing"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/inventory-service/infrastructure"
	"github.com/draftea/order-saga/inventory-service/mocks"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManageInventory_Upsert(t *testing.T) {
	tests := []struct {
		name          string
		cmd           *UpsertInventoryCommand
		setupMocks    func(*mocks.MockInventoryRepository)
		expectedError error
		expected      int
	}{
		{
			name: "creates inventory",
			cmd:  &UpsertInventoryCommand{ProductCode: "COMIC_BOOKS", Available: 10},
			setupMocks: func(repo *mocks.MockInventoryRepository) {
				repo.EXPECT().FindByProductCode(mock.Anything, "COMIC_BOOKS").Return(nil, nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(inv *domain.Inventory) bool {
					return inv.ProductCode == "COMIC_BOOKS" && inv.Available == 10 && !inv.ID.IsEmpty()
				})).Return(nil).Once()
			},
			expected: 10,
		},
		{
			name: "overwrites stock",
			cmd:  &UpsertInventoryCommand{ProductCode: "COMIC_BOOKS", Available: 3},
			setupMocks: func(repo *mocks.MockInventoryRepository) {
				existing := domain.NewInventory("COMIC_BOOKS", 10)
				repo.EXPECT().FindByProductCode(mock.Anything, "COMIC_BOOKS").Return(existing, nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(inv *domain.Inventory) bool {
					return inv.ID == existing.ID && inv.Available == 3
				})).Return(nil).Once()
			},
			expected: 3,
		},
		{
			name:          "missing product code",
			cmd:           &UpsertInventoryCommand{ProductCode: " ", Available: 3},
			setupMocks:    func(*mocks.MockInventoryRepository) {},
			expectedError: events.ErrValidation,
		},
		{
			name:          "negative stock",
			cmd:           &UpsertInventoryCommand{ProductCode: "COMIC_BOOKS", Available: -1},
			setupMocks:    func(*mocks.MockInventoryRepository) {},
			expectedError: events.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockInventoryRepository(t)
			tt.setupMocks(repo)

			response, err := NewManageInventory(repo).Upsert(context.Background(), tt.cmd)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.cmd.ProductCode, response.ProductCode)
			assert.Equal(t, tt.expected, response.Available)
		})
	}
}

func TestManageInventory_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewMockInventoryRepository(t)
		repo.EXPECT().FindByProductCode(mock.Anything, "UNKNOWN").Return(nil, nil).Once()

		_, err := NewManageInventory(repo).Get(context.Background(), "UNKNOWN")
		require.Error(t, err)
		assert.ErrorIs(t, err, events.ErrNotFound)
		assert.Equal(t, "Inventory not found by informed product code: UNKNOWN", err.Error())
	})

	t.Run("repository error", func(t *testing.T) {
		repo := mocks.NewMockInventoryRepository(t)
		repo.EXPECT().FindByProductCode(mock.Anything, "COMIC_BOOKS").Return(nil, errors.New("timeout")).Once()

		_, err := NewManageInventory(repo).Get(context.Background(), "COMIC_BOOKS")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to find inventory")
	})
}

func TestManageInventory_List(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	uc := NewManageInventory(repo)

	_, err := uc.Upsert(context.Background(), &UpsertInventoryCommand{ProductCode: "PHONE", Available: 1})
	require.NoError(t, err)
	_, err = uc.Upsert(context.Background(), &UpsertInventoryCommand{ProductCode: "BOOKS", Available: 2})
	require.NoError(t, err)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BOOKS", list[0].ProductCode)
	assert.Equal(t, "PHONE", list[1].ProductCode)
}
