package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yashrajoria/storefront-backend/models"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Canvas Tote":         "canvas-tote",
		"  Issue #42: Décor ": "issue-42-d-cor",
		"ALREADY-SLUGGED":     "already-slugged",
		"a  b   c":            "a-b-c",
	}
	for input, want := range cases {
		assert.Equal(t, want, models.Slugify(input), input)
	}
}

func TestValidateVariant_ZeroAlwaysAccepted(t *testing.T) {
	for _, productType := range []models.ProductType{models.ProductRegular, models.ProductMagazine, models.ProductShoe} {
		p := &models.Product{ProductType: productType}
		assert.NoError(t, p.ValidateVariant(nil), string(productType))
		assert.NoError(t, p.ValidateVariant(&models.Variant{}), string(productType))
	}
}

func TestValidateVariant_Regular(t *testing.T) {
	p := &models.Product{
		ProductType: models.ProductRegular,
		Variants: []models.VariantGroup{
			{Name: "Color", Options: []models.VariantOption{{Name: "Red"}, {Name: "Blue"}}},
			{Name: "Size", Options: []models.VariantOption{{Name: "M"}}},
		},
	}

	assert.NoError(t, p.ValidateVariant(&models.Variant{Name: "Color", Option: "Red"}))
	assert.NoError(t, p.ValidateVariant(&models.Variant{Name: "Size", Option: "M"}))
	assert.Error(t, p.ValidateVariant(&models.Variant{Name: "Color", Option: "Green"}))
	assert.Error(t, p.ValidateVariant(&models.Variant{Name: "Fit", Option: "Slim"}))

	bare := &models.Product{ProductType: models.ProductRegular}
	assert.Error(t, bare.ValidateVariant(&models.Variant{Name: "Color", Option: "Red"}))
}

func TestValidateVariant_MagazineRejectsAnySelection(t *testing.T) {
	p := &models.Product{ProductType: models.ProductMagazine}
	assert.Error(t, p.ValidateVariant(&models.Variant{Name: "Edition", Option: "Print"}))
}

func TestValidateVariant_Shoe(t *testing.T) {
	p := &models.Product{
		ProductType: models.ProductShoe,
		ShoeData: &models.ShoeData{
			Colors:    []models.ShoeColor{{Name: "Black"}, {Name: "White"}},
			Sizes:     []float64{41, 42, 42.5},
			Widths:    []string{"D", "EE"},
			Materials: []string{"leather"},
		},
	}

	assert.NoError(t, p.ValidateVariant(&models.Variant{Color: "Black", Size: 42.5, Width: "D"}))
	// Unset fields are not checked.
	assert.NoError(t, p.ValidateVariant(&models.Variant{Size: 41}))
	assert.Error(t, p.ValidateVariant(&models.Variant{Color: "Red"}))
	assert.Error(t, p.ValidateVariant(&models.Variant{Size: 44}))
	assert.Error(t, p.ValidateVariant(&models.Variant{Width: "EEE"}))
	assert.Error(t, p.ValidateVariant(&models.Variant{Material: "suede"}))

	bare := &models.Product{ProductType: models.ProductShoe}
	assert.Error(t, bare.ValidateVariant(&models.Variant{Size: 42}))
}

func TestValidatePayload_RegularNeedsNothing(t *testing.T) {
	p := &models.Product{ProductType: models.ProductRegular}
	assert.NoError(t, p.ValidatePayload())
}

func TestValidatePayload_Magazine(t *testing.T) {
	p := &models.Product{ProductType: models.ProductMagazine}
	assert.Error(t, p.ValidatePayload())

	p.MagazineData = &models.MagazineData{}
	assert.Error(t, p.ValidatePayload())

	p.MagazineData.IssueNumber = 42
	assert.NoError(t, p.ValidatePayload())
}

func TestValidatePayload_Shoe(t *testing.T) {
	p := &models.Product{ProductType: models.ProductShoe}
	assert.Error(t, p.ValidatePayload())

	p.ShoeData = &models.ShoeData{Widths: []string{"D"}}
	assert.Error(t, p.ValidatePayload())

	p.ShoeData.Sizes = []float64{42}
	assert.NoError(t, p.ValidatePayload())
}

func TestValidatePayload_UnknownType(t *testing.T) {
	p := &models.Product{ProductType: "bundle"}
	assert.Error(t, p.ValidatePayload())
}
