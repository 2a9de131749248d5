package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/adapter/repository"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/database"
	"go.uber.org/zap"
)

func newRepositories(t *testing.T) *database.Repositories {
	t.Helper()
	db, err := database.OpenInMemory(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db, zap.NewNop()) })
	return database.NewRepositories(db, zap.NewNop())
}

func TestEntityRepository_TablesAreSeparated(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)

	brand := &model.ExternalEntity{ExternalID: "7", Name: "Kariban"}
	require.NoError(t, repos.Entity.Create(ctx, model.EntityBrand, brand))
	assert.NotZero(t, brand.ID)

	found, err := repos.Entity.FindByExternalID(ctx, model.EntityBrand, "7")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Kariban", found.Name)

	// same external id in another table is unrelated
	missing, err := repos.Entity.FindByExternalID(ctx, model.EntityCustomer, "7")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repos.Entity.UpdateName(ctx, model.EntityBrand, brand.ID, "Kariban Pro"))
	found, err = repos.Entity.FindByExternalID(ctx, model.EntityBrand, "7")
	require.NoError(t, err)
	assert.Equal(t, "Kariban Pro", found.Name)

	count, err := repos.Entity.Count(ctx, model.EntityBrand)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEntityRepository_DuplicateExternalIDIsRejected(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)

	require.NoError(t, repos.Entity.Create(ctx, model.EntityCustomer, &model.ExternalEntity{ExternalID: "C-1", Name: "Acme"}))
	err := repos.Entity.Create(ctx, model.EntityCustomer, &model.ExternalEntity{ExternalID: "C-1", Name: "Acme bis"})
	assert.Error(t, err)
}

func seedValues(t *testing.T, repos *database.Repositories) (color, size []int64) {
	t.Helper()
	ctx := context.Background()

	colorAttr := &model.ExternalEntity{ExternalID: model.AttributeColorExternalID, Name: model.AttributeColorName}
	sizeAttr := &model.ExternalEntity{ExternalID: model.AttributeSizeExternalID, Name: model.AttributeSizeName}
	require.NoError(t, repos.Entity.Create(ctx, model.EntityAttribute, colorAttr))
	require.NoError(t, repos.Entity.Create(ctx, model.EntityAttribute, sizeAttr))

	for _, name := range []string{"Rojo", "Azul"} {
		v := &model.AttributeValue{AttributeID: colorAttr.ID, Name: name}
		require.NoError(t, repos.AttributeValue.Create(ctx, v))
		color = append(color, v.ID)
	}
	for _, name := range []string{"M", "L"} {
		v := &model.AttributeValue{AttributeID: sizeAttr.ID, Name: name}
		require.NoError(t, repos.AttributeValue.Create(ctx, v))
		size = append(size, v.ID)
	}
	return color, size
}

func TestProductRepository_EnsureVariantsAddsOnlyMissing(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	color, size := seedValues(t, repos)

	template := &model.ProductTemplate{ExternalReference: "X1", Name: "TopTex Camiseta"}
	require.NoError(t, repos.Product.CreateTemplate(ctx, template))

	first := []domainRepo.VariantCombination{{ColorValueID: color[0], SizeValueID: size[0]}}
	variants, err := repos.Product.EnsureVariants(ctx, template.ID, first)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "Rojo", variants[0].ColorValue.Name)
	assert.Equal(t, "M", variants[0].SizeValue.Name)

	var all []domainRepo.VariantCombination
	for _, c := range color {
		for _, s := range size {
			all = append(all, domainRepo.VariantCombination{ColorValueID: c, SizeValueID: s})
		}
	}
	variants, err = repos.Product.EnsureVariants(ctx, template.ID, all)
	require.NoError(t, err)
	require.Len(t, variants, 4)

	again, err := repos.Product.EnsureVariants(ctx, template.ID, all)
	require.NoError(t, err)
	assert.Len(t, again, 4)
}

func TestProductRepository_EnsureVariantsWithoutSizeAxis(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	color, _ := seedValues(t, repos)

	template := &model.ProductTemplate{ExternalReference: "BAG1", Name: "TopTex Bolsa"}
	require.NoError(t, repos.Product.CreateTemplate(ctx, template))

	combos := []domainRepo.VariantCombination{{ColorValueID: color[0]}, {ColorValueID: color[1]}}
	variants, err := repos.Product.EnsureVariants(ctx, template.ID, combos)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "Rojo", variants[0].ColorValue.Name)
	assert.Equal(t, int64(0), variants[0].SizeValueID)
	assert.Equal(t, "", variants[0].SizeValue.Name)

	again, err := repos.Product.EnsureVariants(ctx, template.ID, combos)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestProductRepository_TemplateReferenceAndAttributeLinks(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	color, size := seedValues(t, repos)

	missing, err := repos.Product.FindTemplateByReference(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, missing)

	template := &model.ProductTemplate{ExternalReference: "X1", Name: "TopTex Camiseta"}
	require.NoError(t, repos.Product.CreateTemplate(ctx, template))

	require.NoError(t, repos.Product.SetTemplateAttributeValues(ctx, template.ID, []int64{color[0], size[0]}))
	require.NoError(t, repos.Product.SetTemplateAttributeValues(ctx, template.ID, []int64{color[0], size[1]}))

	template.Name = "TopTex Camiseta Premium"
	template.ImageURI = "db://media_blobs/templates/1.jpg"
	require.NoError(t, repos.Product.UpdateTemplate(ctx, template))

	found, err := repos.Product.FindTemplateByReference(ctx, "X1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, template.ID, found.ID)

	loaded, err := repos.Product.GetTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "TopTex Camiseta Premium", loaded.Name)
	assert.Equal(t, "db://media_blobs/templates/1.jpg", loaded.ImageURI)
	assert.Len(t, loaded.AttributeValues, 3)
}

func TestProductRepository_VariantSKU(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	color, size := seedValues(t, repos)

	template := &model.ProductTemplate{ExternalReference: "X1", Name: "TopTex Camiseta"}
	require.NoError(t, repos.Product.CreateTemplate(ctx, template))
	variants, err := repos.Product.EnsureVariants(ctx, template.ID, []domainRepo.VariantCombination{
		{ColorValueID: color[0], SizeValueID: size[0]},
		{ColorValueID: color[1], SizeValueID: size[0]},
	})
	require.NoError(t, err)
	require.Len(t, variants, 2)

	// variants without a code do not collide
	none, err := repos.Product.FindVariantBySKU(ctx, "X1-R-M")
	require.NoError(t, err)
	assert.Nil(t, none)

	sku := "X1-R-M"
	variants[0].SKU = &sku
	variants[0].StandardPrice = decimal.RequireFromString("5")
	variants[0].ListPrice = decimal.RequireFromString("6.25")
	require.NoError(t, repos.Product.UpdateVariant(ctx, &variants[0]))

	found, err := repos.Product.FindVariantBySKU(ctx, "X1-R-M")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, variants[0].ID, found.ID)
	assert.True(t, found.ListPrice.Equal(decimal.RequireFromString("6.25")))

	variants[1].SKU = &sku
	assert.Error(t, repos.Product.UpdateVariant(ctx, &variants[1]))
}

func TestCustomerPriceRepository_UniquePerSKUAndCustomer(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)

	price := &model.CustomerPrice{ProductSKU: "X1-R-M", CustomerID: 1, Price: decimal.RequireFromString("4.5"), Currency: "EUR"}
	require.NoError(t, repos.CustomerPrice.Create(ctx, price))

	dup := &model.CustomerPrice{ProductSKU: "X1-R-M", CustomerID: 1, Price: decimal.RequireFromString("4"), Currency: "EUR"}
	assert.Error(t, repos.CustomerPrice.Create(ctx, dup))

	price.Price = decimal.RequireFromString("4.2")
	price.Currency = "USD"
	require.NoError(t, repos.CustomerPrice.Update(ctx, price))

	found, err := repos.CustomerPrice.FindBySKUAndCustomer(ctx, "X1-R-M", 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("4.2")))
	assert.Equal(t, "USD", found.Currency)

	other, err := repos.CustomerPrice.FindBySKUAndCustomer(ctx, "X1-R-M", 2)
	require.NoError(t, err)
	assert.Nil(t, other)

	list, err := repos.CustomerPrice.ListByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTokenRepository_SaveReplacesWholeToken(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Token.Save(ctx, &model.VendorToken{CredentialKey: "k", Value: "first", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repos.Token.Save(ctx, &model.VendorToken{CredentialKey: "k", Value: "second", ExpiresAt: now.Add(2 * time.Hour)}))

	token, err := repos.Token.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "second", token.Value)
	assert.True(t, token.ExpiresAt.Equal(now.Add(2*time.Hour)))

	require.NoError(t, repos.Token.Delete(ctx, "k"))
	token, err = repos.Token.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestImportRunRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)

	run := &model.ImportRun{ID: uuid.New(), State: model.ImportStateAuthenticating, StartedAt: time.Now().UTC()}
	require.NoError(t, repos.ImportRun.Create(ctx, run))

	run.State = model.ImportStateDone
	run.Processed = 3
	require.NoError(t, repos.ImportRun.Update(ctx, run))

	loaded, err := repos.ImportRun.GetByID(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, model.ImportStateDone, loaded.State)
	assert.Equal(t, 3, loaded.Processed)

	missing, err := repos.ImportRun.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	recent, err := repos.ImportRun.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestMediaRepository_PutReplacesByKey(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)

	uri, err := repos.Media.Put(ctx, "templates/1.jpg", []byte{1, 2, 3}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, repository.MediaURIPrefix+"templates/1.jpg", uri)

	_, err = repos.Media.Put(ctx, "templates/1.jpg", []byte{4, 5}, "image/jpeg")
	require.NoError(t, err)

	blob, err := repos.Media.Get(ctx, "templates/1.jpg")
	require.NoError(t, err)
	require.NotNil(t, blob)
	assert.Equal(t, []byte{4, 5}, blob.Data)
	assert.Equal(t, 2, blob.Size)
}
