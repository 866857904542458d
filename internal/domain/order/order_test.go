package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusBasket, StatusNew, true},
		{StatusBasket, StatusConfirmed, false},
		{StatusNew, StatusConfirmed, true},
		{StatusNew, StatusCanceled, true},
		{StatusNew, StatusSent, false},
		{StatusConfirmed, StatusAssembled, true},
		{StatusAssembled, StatusSent, true},
		{StatusSent, StatusDelivered, true},
		{StatusSent, StatusCanceled, false},
		{StatusDelivered, StatusNew, false},
		{StatusCanceled, StatusNew, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrder_AddItem(t *testing.T) {
	basket := NewBasket(uuid.New())
	offer := uuid.New()

	t.Run("adds new line", func(t *testing.T) {
		require.NoError(t, basket.AddItem(offer, 2))
		require.Len(t, basket.Items, 1)
		assert.Equal(t, 2, basket.Items[0].Quantity)
	})

	t.Run("same offer replaces quantity", func(t *testing.T) {
		require.NoError(t, basket.AddItem(offer, 7))
		require.Len(t, basket.Items, 1)
		assert.Equal(t, 7, basket.Items[0].Quantity)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		err := basket.AddItem(uuid.New(), 0)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_QUANTITY", derr.Code)
	})

	t.Run("rejects adding to a placed order", func(t *testing.T) {
		placed := NewBasket(uuid.New())
		require.NoError(t, placed.AddItem(uuid.New(), 1))
		require.NoError(t, placed.Place(uuid.New()))

		assert.Error(t, placed.AddItem(uuid.New(), 1))
	})
}

func TestOrder_UpdateItemQuantity(t *testing.T) {
	basket := NewBasket(uuid.New())
	require.NoError(t, basket.AddItem(uuid.New(), 1))
	itemID := basket.Items[0].ID

	require.NoError(t, basket.UpdateItemQuantity(itemID, 5))
	assert.Equal(t, 5, basket.Items[0].Quantity)

	assert.ErrorIs(t, basket.UpdateItemQuantity(uuid.New(), 5), shared.ErrNotFound)
	assert.Error(t, basket.UpdateItemQuantity(itemID, 0))
}

func TestOrder_RemoveItems(t *testing.T) {
	basket := NewBasket(uuid.New())
	require.NoError(t, basket.AddItem(uuid.New(), 1))
	require.NoError(t, basket.AddItem(uuid.New(), 2))
	require.NoError(t, basket.AddItem(uuid.New(), 3))

	removed, err := basket.RemoveItems([]uuid.UUID{basket.Items[0].ID, basket.Items[2].ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, 2, basket.Items[0].Quantity)
}

func TestOrder_Place(t *testing.T) {
	t.Run("places basket with items", func(t *testing.T) {
		basket := NewBasket(uuid.New())
		require.NoError(t, basket.AddItem(uuid.New(), 1))
		basket.ClearDomainEvents()

		contactID := uuid.New()
		require.NoError(t, basket.Place(contactID))

		assert.Equal(t, StatusNew, basket.Status)
		require.NotNil(t, basket.ContactID)
		assert.Equal(t, contactID, *basket.ContactID)

		events := basket.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("rejects empty basket", func(t *testing.T) {
		basket := NewBasket(uuid.New())
		err := basket.Place(uuid.New())
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "EMPTY_BASKET", derr.Code)
	})

	t.Run("rejects double placement", func(t *testing.T) {
		basket := NewBasket(uuid.New())
		require.NoError(t, basket.AddItem(uuid.New(), 1))
		require.NoError(t, basket.Place(uuid.New()))

		assert.Error(t, basket.Place(uuid.New()))
	})
}

func TestOrder_Total(t *testing.T) {
	basket := NewBasket(uuid.New())
	require.NoError(t, basket.AddItem(uuid.New(), 2))
	require.NoError(t, basket.AddItem(uuid.New(), 1))

	basket.Items[0].ProductInfo = &catalog.ProductInfo{Price: decimal.NewFromInt(110000)}
	basket.Items[1].ProductInfo = &catalog.ProductInfo{Price: decimal.NewFromInt(990)}

	assert.True(t, basket.Total().Equal(decimal.NewFromInt(220990)))
}

func TestNewContact_Validation(t *testing.T) {
	userID := uuid.New()

	contact, err := NewContact(userID, "Moscow", "Tverskaya", "12", "34", "+7 900 000-00-00")
	require.NoError(t, err)
	assert.Equal(t, "Moscow", contact.City)

	_, err = NewContact(userID, "", "Tverskaya", "", "", "+7 900 000-00-00")
	assert.Error(t, err)

	_, err = NewContact(userID, "Moscow", "Tverskaya", "", "", "  ")
	assert.Error(t, err)
}
