package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/internal/domain/repository"
)

type mockProductRepo struct {
	products map[string]*entity.Product
	nextID   int
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: map[string]*entity.Product{}}
}

func (m *mockProductRepo) Create(_ context.Context, p *entity.Product) error {
	m.nextID++
	p.ID = "prod-" + string(rune('0'+m.nextID))
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) List(_ context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

var _ repository.ProductRepository = (*mockProductRepo)(nil)

func TestCatalogCreateValidation(t *testing.T) {
	svc := NewCatalogService(newMockProductRepo(), nil, "", nil, "", nil)

	cases := []struct {
		field string
		in    ProductInput
	}{
		{"name", ProductInput{Name: "  ", Description: "d", Price: 1}},
		{"description", ProductInput{Name: "n", Description: "", Price: 1}},
		{"price", ProductInput{Name: "n", Description: "d", Price: -1}},
		{"stock", ProductInput{Name: "n", Description: "d", Price: 1, Stock: -5}},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "field %s", tc.field)
		assert.Equal(t, tc.field, verr.Field)
	}
}

func TestCatalogCRUD(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewCatalogService(repo, nil, "", nil, "", nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductInput{Name: " Classic Tee ", Description: "Soft cotton tee", Price: 19.5, Stock: 40})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Classic Tee", p.Name, "name is stored trimmed")

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", got.Name)

	updated, err := svc.Update(ctx, p.ID, ProductInput{Name: "Classic Tee v2", Description: "Softer", Price: 21, Stock: 35})
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee v2", updated.Name)
	assert.Equal(t, 21.0, updated.Price)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogUpdateMissingProduct(t *testing.T) {
	svc := NewCatalogService(newMockProductRepo(), nil, "", nil, "", nil)

	_, err := svc.Update(context.Background(), "ghost", ProductInput{Name: "n", Description: "d", Price: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogSearchWithoutES(t *testing.T) {
	svc := NewCatalogService(newMockProductRepo(), nil, "", nil, "", nil)

	hits, err := svc.Search(context.Background(), "tee", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCatalogUploadImageUnconfigured(t *testing.T) {
	svc := NewCatalogService(newMockProductRepo(), nil, "", nil, "", nil)

	_, err := svc.UploadImage(context.Background(), "prod-1", nil, "a.png", "image/png")
	assert.Error(t, err)
}
