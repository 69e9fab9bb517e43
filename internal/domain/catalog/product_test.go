package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func price(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyUSDFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates product with derived slug", func(t *testing.T) {
		p, err := NewProduct(tenantID, "shirt-01", "Blue Shirt", price(t, "29.99"))
		require.NoError(t, err)

		assert.Equal(t, "SHIRT-01", p.SKU)
		assert.Equal(t, "Blue Shirt", p.Name)
		assert.Equal(t, "blue-shirt", p.Slug)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.Equal(t, int64(0), p.Stock)
		assert.Equal(t, tenantID, p.TenantID)
		assert.Equal(t, 1, p.GetVersion())
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewProduct(tenantID, "", "Blue Shirt", price(t, "29.99"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SKU", domainErr.Code)
	})

	t.Run("rejects SKU with invalid characters", func(t *testing.T) {
		_, err := NewProduct(tenantID, "shirt 01!", "Blue Shirt", price(t, "29.99"))
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(tenantID, "shirt-01", "", price(t, "29.99"))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(tenantID, "shirt-01", "Blue Shirt", price(t, "-1"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})
}

func TestProductUpdate(t *testing.T) {
	p, err := NewProduct(uuid.New(), "shirt-01", "Blue Shirt", price(t, "29.99"))
	require.NoError(t, err)
	initialVersion := p.GetVersion()

	require.NoError(t, p.Update("Red Shirt", "now in red"))
	assert.Equal(t, "Red Shirt", p.Name)
	assert.Equal(t, "now in red", p.Description)
	assert.Equal(t, initialVersion+1, p.GetVersion())

	assert.Error(t, p.Update("", "desc"))
}

func TestProductSetSlug(t *testing.T) {
	p, err := NewProduct(uuid.New(), "shirt-01", "Blue Shirt", price(t, "29.99"))
	require.NoError(t, err)

	require.NoError(t, p.SetSlug("custom-slug"))
	assert.Equal(t, "custom-slug", p.Slug)

	assert.Error(t, p.SetSlug("Bad Slug"))
	assert.Error(t, p.SetSlug(""))
}

func TestProductSetPrice(t *testing.T) {
	p, err := NewProduct(uuid.New(), "shirt-01", "Blue Shirt", price(t, "29.99"))
	require.NoError(t, err)
	p.ClearDomainEvents()

	require.NoError(t, p.SetPrice(price(t, "39.99")))
	assert.Equal(t, "39.99", p.Price.StringFixed(2))
	assert.Len(t, p.GetDomainEvents(), 1)

	assert.Error(t, p.SetPrice(price(t, "-5")))
}

func TestProductSetStock(t *testing.T) {
	p, err := NewProduct(uuid.New(), "shirt-01", "Blue Shirt", price(t, "29.99"))
	require.NoError(t, err)

	require.NoError(t, p.SetStock(10))
	assert.Equal(t, int64(10), p.Stock)

	assert.Error(t, p.SetStock(-1))
}

func TestProductActivation(t *testing.T) {
	p, err := NewProduct(uuid.New(), "shirt-01", "Blue Shirt", price(t, "29.99"))
	require.NoError(t, err)

	t.Run("activating an active product fails", func(t *testing.T) {
		assert.Error(t, p.Activate())
	})

	t.Run("deactivate then activate", func(t *testing.T) {
		require.NoError(t, p.Deactivate())
		assert.False(t, p.IsActive())

		assert.Error(t, p.Deactivate())

		require.NoError(t, p.Activate())
		assert.True(t, p.IsActive())
	})
}

func TestProductFindVariant(t *testing.T) {
	tenantID := uuid.New()
	p, err := NewProduct(tenantID, "shirt-01", "Blue Shirt", price(t, "29.99"))
	require.NoError(t, err)

	v, err := NewProductVariant(tenantID, p.ID, "shirt-01-xl", "Blue Shirt XL", price(t, "34.99"))
	require.NoError(t, err)
	p.Variants = append(p.Variants, *v)

	found := p.FindVariant(v.ID)
	require.NotNil(t, found)
	assert.Equal(t, "SHIRT-01-XL", found.SKU)

	assert.Nil(t, p.FindVariant(uuid.New()))
}

func TestNewProductVariant(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("creates variant", func(t *testing.T) {
		v, err := NewProductVariant(tenantID, productID, "shirt-01-xl", "XL", price(t, "34.99"))
		require.NoError(t, err)
		assert.Equal(t, "SHIRT-01-XL", v.SKU)
		assert.Equal(t, "{}", v.Attributes)
		assert.True(t, v.IsActive)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewProductVariant(tenantID, uuid.Nil, "shirt-01-xl", "XL", price(t, "34.99"))
		assert.Error(t, err)
	})
}

func TestProductVariantSetAttributes(t *testing.T) {
	v, err := NewProductVariant(uuid.New(), uuid.New(), "shirt-01-xl", "XL", price(t, "34.99"))
	require.NoError(t, err)

	require.NoError(t, v.SetAttributes(`{"size":"XL","color":"blue"}`))
	assert.Error(t, v.SetAttributes("not json"))

	require.NoError(t, v.SetAttributes(""))
	assert.Equal(t, "{}", v.Attributes)
}
