package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/services"
	"go.uber.org/zap"
)

func newProductService() (*services.ProductService, *mockProductRepo) {
	repo := newMockProductRepo()
	logger, _ := zap.NewDevelopment()
	return services.NewProductService(repo, logger), repo
}

func TestCreateProduct_MagazineRequiresIssueData(t *testing.T) {
	svc, repo := newProductService()

	_, svcErr := svc.Create(context.Background(), &models.Product{
		Name:        "Issue 9",
		Price:       12,
		ProductType: models.ProductMagazine,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Empty(t, repo.products)

	_, svcErr = svc.Create(context.Background(), &models.Product{
		Name:         "Issue 9",
		Price:        12,
		ProductType:  models.ProductMagazine,
		MagazineData: &models.MagazineData{IssueNumber: 0},
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	created, svcErr := svc.Create(context.Background(), &models.Product{
		Name:         "Issue 9",
		Price:        12,
		ProductType:  models.ProductMagazine,
		MagazineData: &models.MagazineData{IssueNumber: 9},
	})
	require.Nil(t, svcErr)
	assert.Equal(t, "issue-9", created.Slug)
	assert.Len(t, repo.products, 1)
}

func TestCreateProduct_ShoeRequiresSizeOptions(t *testing.T) {
	svc, repo := newProductService()

	_, svcErr := svc.Create(context.Background(), &models.Product{
		Name:        "Trail Runner",
		Price:       89,
		ProductType: models.ProductShoe,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	_, svcErr = svc.Create(context.Background(), &models.Product{
		Name:        "Trail Runner",
		Price:       89,
		ProductType: models.ProductShoe,
		ShoeData:    &models.ShoeData{Widths: []string{"D"}},
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Empty(t, repo.products)

	_, svcErr = svc.Create(context.Background(), &models.Product{
		Name:        "Trail Runner",
		Price:       89,
		ProductType: models.ProductShoe,
		ShoeData:    &models.ShoeData{Sizes: []float64{41, 42}},
	})
	require.Nil(t, svcErr)
	assert.Len(t, repo.products, 1)
}

func TestCreateProduct_DefaultsToRegular(t *testing.T) {
	svc, _ := newProductService()

	created, svcErr := svc.Create(context.Background(), &models.Product{Name: "Canvas Tote", Price: 25})
	require.Nil(t, svcErr)
	assert.Equal(t, models.ProductRegular, created.ProductType)
}

func TestUpdateProduct_KeepsTypeAndValidatesPayload(t *testing.T) {
	svc, repo := newProductService()
	existing := repo.add(&models.Product{
		Name:         "Issue 9",
		Slug:         "issue-9",
		Price:        12,
		ProductType:  models.ProductMagazine,
		MagazineData: &models.MagazineData{IssueNumber: 9},
	})

	// An update that omits productType stays a magazine and must still
	// carry the magazine payload.
	_, svcErr := svc.Update(context.Background(), existing.ID.Hex(), &models.Product{
		Name:  "Issue 9 Reprint",
		Price: 14,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	updated, svcErr := svc.Update(context.Background(), existing.ID.Hex(), &models.Product{
		Name:         "Issue 9 Reprint",
		Price:        14,
		MagazineData: &models.MagazineData{IssueNumber: 9},
	})
	require.Nil(t, svcErr)
	assert.Equal(t, models.ProductMagazine, updated.ProductType)
	assert.Equal(t, "issue-9-reprint", updated.Slug)
}
