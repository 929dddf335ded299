package catalog

import (
	"strings"
	"testing"

	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDefaultMenuLoads(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	require.NoError(t, err)
	require.NotZero(t, cat.Len())
	require.NotEmpty(t, cat.Categories())

	ribeye, ok := cat.Product("1")
	require.True(t, ok)
	require.Equal(t, "Classic Ribeye", ribeye.Name)
	require.True(t, ribeye.Customizable())

	extras, ok := ribeye.Group("Ad-On Extras")
	require.True(t, ok)
	require.True(t, extras.MultiSelect())

	doneness, ok := ribeye.Group("Doneness")
	require.True(t, ok)
	require.True(t, doneness.Required())
	// Bare labels price at zero.
	require.True(t, doneness.Options[0].Price.IsZero())
}

func TestLoadLegacyKindFromName(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"Test","products":[{
		"id": 9,
		"name": "Legacy Steak",
		"price": 500,
		"customizations": {"customizations": [
			{"name": "Size", "options": ["Small", {"name": "Large", "price": 150}]},
			{"name": "Ad - On Extras", "options": [{"name": "Cheese", "price": 50}]}
		]}
	}]}]`

	cat, err := Load(strings.NewReader(source))
	require.NoError(t, err)

	product, ok := cat.Product("9")
	require.True(t, ok)

	size, ok := product.Group("Size")
	require.True(t, ok)
	require.Equal(t, GroupSingleRequired, size.Kind)

	large, ok := size.Option("Large")
	require.True(t, ok)
	require.True(t, large.Price.Equal(decimal.NewFromInt(150)))

	extras, ok := product.Group("Ad - On Extras")
	require.True(t, ok)
	require.Equal(t, GroupMultiOptional, extras.Kind)
}

func TestLoadStringIDs(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"Test","products":[{"id":"sku-7","name":"Thing","price":100}]}]`
	cat, err := Load(strings.NewReader(source))
	require.NoError(t, err)

	_, ok := cat.Product("sku-7")
	require.True(t, ok)
}

func TestLoadRejectsRequiredGroupWithoutOptions(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"Test","products":[{
		"id": 1, "name": "Broken", "price": 100,
		"customizations": {"customizations": [{"name": "Size", "kind": "single_required", "options": []}]}
	}]}]`

	_, err := Load(strings.NewReader(source))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeCatalog, typed.Code())
}

func TestLoadRejectsEmptyCustomizations(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"Test","products":[{
		"id": 1, "name": "Broken", "price": 100,
		"customizations": {"customizations": []}
	}]}]`

	_, err := Load(strings.NewReader(source))
	require.Error(t, err)
}

func TestLoadRejectsDuplicateOptionLabels(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"Test","products":[{
		"id": 1, "name": "Broken", "price": 100,
		"customizations": {"customizations": [
			{"name": "Size", "options": ["Small", "Small"]}
		]}
	}]}]`

	_, err := Load(strings.NewReader(source))
	require.Error(t, err)
}

func TestLoadRejectsDuplicateProductIDs(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"A","products":[
		{"id": 1, "name": "One", "price": 100},
		{"id": 1, "name": "Two", "price": 200}
	]}]`

	_, err := Load(strings.NewReader(source))
	require.Error(t, err)
}

func TestLoadRejectsNegativePrices(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"A","products":[{"id": 1, "name": "One", "price": -5}]}]`
	_, err := Load(strings.NewReader(source))
	require.Error(t, err)
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	source := `[{"categoryName":"A","products":[{
		"id": 1, "name": "One", "price": 100,
		"customizations": {"customizations": [{"name": "Size", "kind": "triple", "options": ["S"]}]}
	}]}]`
	_, err := Load(strings.NewReader(source))
	require.Error(t, err)
}
