package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/internal/domain/repository"
)

type mockInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{items: map[string]*entity.InventoryItem{}}
}

func (m *mockInventoryRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	it.ID = "item-1"
	m.items[it.ID] = it
	return nil
}

func (m *mockInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	if it, ok := m.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockInventoryRepo) List(_ context.Context) ([]entity.InventoryItem, error) {
	out := make([]entity.InventoryItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	return out, nil
}

func (m *mockInventoryRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	if _, ok := m.items[it.ID]; !ok {
		return repository.ErrNotFound
	}
	m.items[it.ID] = it
	return nil
}

func (m *mockInventoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

var _ repository.InventoryRepository = (*mockInventoryRepo)(nil)

func TestInventoryCreateValidation(t *testing.T) {
	svc := NewInventoryService(newMockInventoryRepo(), nil)

	cases := []struct {
		field string
		in    InventoryInput
	}{
		{"name", InventoryInput{Name: "   "}},
		{"quantity", InventoryInput{Name: "Mug", Quantity: -1}},
		{"price", InventoryInput{Name: "Mug", Quantity: 3, Price: -0.5}},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "field %s", tc.field)
		assert.Equal(t, tc.field, verr.Field)
	}
}

func TestInventoryCRUD(t *testing.T) {
	svc := NewInventoryService(newMockInventoryRepo(), nil)
	ctx := context.Background()

	it, err := svc.Create(ctx, InventoryInput{Name: " Enamel Mug ", Quantity: 12, Price: 9.5})
	require.NoError(t, err)
	assert.Equal(t, "Enamel Mug", it.Name)

	updated, err := svc.Update(ctx, it.ID, InventoryInput{Name: "Enamel Mug", Quantity: 0, Price: 9.5})
	require.NoError(t, err)
	assert.Zero(t, updated.Quantity, "zero quantity is valid; only negatives are rejected")

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, it.ID))
	assert.ErrorIs(t, svc.Delete(ctx, it.ID), repository.ErrNotFound)
}

func TestInventoryUpdateMissing(t *testing.T) {
	svc := NewInventoryService(newMockInventoryRepo(), nil)

	_, err := svc.Update(context.Background(), "ghost", InventoryInput{Name: "Mug", Quantity: 1, Price: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
