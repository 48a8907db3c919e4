//go:build integration

package pgdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// CatalogStoreSuite поднимает PostgreSQL в контейнере и гоняет
// репозитории продуктов и категорий против настоящей схемы.
type CatalogStoreSuite struct {
	suite.Suite
	pgContainer  *postgres.PostgresContainer
	dbPool       *pgxpool.Pool
	productRepo  *ProductRepo
	categoryRepo *CategoryRepo
	ctx          context.Context
}

func (s *CatalogStoreSuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := 0; i < 10; i++ {
		if err = s.dbPool.Ping(s.ctx); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	wd, err := os.Getwd()
	require.NoError(s.T(), err)
	migrationsPath := filepath.Join(wd, "..", "..", "..", "db", "migrations")

	m, err := migrate.New("file://"+migrationsPath, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	require.NoError(s.T(), m.Up(), "Failed to apply migrations")

	s.productRepo = NewProductRepo(s.dbPool, converter.NewProductConverter())
	s.categoryRepo = NewCategoryRepo(s.dbPool, converter.NewCategoryConverter())
}

func (s *CatalogStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		require.NoError(s.T(), s.pgContainer.Terminate(s.ctx))
	}
}

func (s *CatalogStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE products")
	require.NoError(s.T(), err)
}

func (s *CatalogStoreSuite) mustCreate(name, sku string, categoryID int64) int64 {
	id, err := s.productRepo.Create(s.ctx, domain.NewProduct(name, sku, 4999, categoryID, domain.StatusActive, nil))
	require.NoError(s.T(), err)
	return id
}

func (s *CatalogStoreSuite) TestCategoriesSeeded() {
	categories, err := s.categoryRepo.ListAll(s.ctx)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), categories)

	// отсортированы по имени
	for i := 1; i < len(categories); i++ {
		assert.LessOrEqual(s.T(), categories[i-1].Name, categories[i].Name)
	}

	category, err := s.categoryRepo.GetByID(s.ctx, categories[0].ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), categories[0].Name, category.Name)
}

func (s *CatalogStoreSuite) TestCategoryNotFound() {
	_, err := s.categoryRepo.GetByID(s.ctx, 999_999)
	assert.ErrorIs(s.T(), err, e.ErrCategoryNotFound)
}

func (s *CatalogStoreSuite) TestCreateAndGet() {
	id := s.mustCreate("Keyboard", "KB-001", 1)

	got, err := s.productRepo.GetByID(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Keyboard", got.Name)
	assert.Equal(s.T(), "KB-001", got.SKU)
	assert.Equal(s.T(), int64(4999), got.PriceCents)
	assert.NotEmpty(s.T(), got.CategoryName)
}

func (s *CatalogStoreSuite) TestGetNotFound() {
	_, err := s.productRepo.GetByID(s.ctx, 999_999)
	assert.ErrorIs(s.T(), err, e.ErrProductNotFound)
}

func (s *CatalogStoreSuite) TestDuplicateSKU() {
	s.mustCreate("Keyboard", "KB-001", 1)

	_, err := s.productRepo.Create(s.ctx, domain.NewProduct("Other", "KB-001", 100, 1, domain.StatusActive, nil))
	assert.ErrorIs(s.T(), err, e.ErrSkuNotUnique)
}

func (s *CatalogStoreSuite) TestExistsBySKU() {
	id := s.mustCreate("Keyboard", "KB-001", 1)

	exists, err := s.productRepo.ExistsBySKU(s.ctx, "KB-001")
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.productRepo.ExistsBySKU(s.ctx, "KB-404")
	require.NoError(s.T(), err)
	assert.False(s.T(), exists)

	// продукт не конфликтует сам с собой
	exists, err = s.productRepo.ExistsBySKUExcludingID(s.ctx, "KB-001", id)
	require.NoError(s.T(), err)
	assert.False(s.T(), exists)

	exists, err = s.productRepo.ExistsBySKUExcludingID(s.ctx, "KB-001", id+1)
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)
}

func (s *CatalogStoreSuite) TestSearch() {
	for i := 1; i <= 15; i++ {
		s.mustCreate(fmt.Sprintf("Keyboard %d", i), fmt.Sprintf("KB-%03d", i), 1)
	}
	s.mustCreate("Mouse", "MS-001", 2)

	// подстрока имени, без учёта регистра
	res, total, err := s.productRepo.Search(s.ctx, &usecase.SearchProductsReq{Term: "keyboard", Page: 1, PageSize: 10})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(15), total)
	assert.Len(s.T(), res, 10)

	// вторая страница
	res, _, err = s.productRepo.Search(s.ctx, &usecase.SearchProductsReq{Term: "keyboard", Page: 2, PageSize: 10})
	require.NoError(s.T(), err)
	assert.Len(s.T(), res, 5)

	// поиск по SKU
	res, total, err = s.productRepo.Search(s.ctx, &usecase.SearchProductsReq{Term: "ms-", Page: 1, PageSize: 10})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), total)

	// фильтр по категории
	categoryID := int64(2)
	res, total, err = s.productRepo.Search(s.ctx, &usecase.SearchProductsReq{CategoryID: &categoryID, Page: 1, PageSize: 10})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), total)
	require.Len(s.T(), res, 1)
	assert.Equal(s.T(), "Mouse", res[0].Name)

	// пустой запрос возвращает всё, новые первыми
	res, total, err = s.productRepo.Search(s.ctx, &usecase.SearchProductsReq{Page: 1, PageSize: 100})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(16), total)
	assert.Equal(s.T(), "Mouse", res[0].Name)
}

func (s *CatalogStoreSuite) TestUpdate() {
	id := s.mustCreate("Keyboard", "KB-001", 1)

	photo := "ab12.png"
	err := s.productRepo.Update(s.ctx, &domain.Product{
		ID:         id,
		Name:       "Mechanical Keyboard",
		SKU:        "KB-001",
		PriceCents: 9999,
		CategoryID: 1,
		Status:     domain.StatusInactive,
		Photo:      &photo,
	})
	require.NoError(s.T(), err)

	got, err := s.productRepo.GetByID(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Mechanical Keyboard", got.Name)
	assert.Equal(s.T(), int64(9999), got.PriceCents)
	assert.Equal(s.T(), domain.StatusInactive, got.Status)
	require.NotNil(s.T(), got.Photo)
	assert.Equal(s.T(), "ab12.png", *got.Photo)
}

func (s *CatalogStoreSuite) TestUpdateNotFound() {
	err := s.productRepo.Update(s.ctx, &domain.Product{
		ID:         999_999,
		Name:       "Ghost",
		SKU:        "GH-001",
		PriceCents: 100,
		CategoryID: 1,
		Status:     domain.StatusActive,
	})
	assert.ErrorIs(s.T(), err, e.ErrProductNotFound)
}

func (s *CatalogStoreSuite) TestUpdateDuplicateSKU() {
	s.mustCreate("Keyboard", "KB-001", 1)
	id := s.mustCreate("Mouse", "MS-001", 1)

	err := s.productRepo.Update(s.ctx, &domain.Product{
		ID:         id,
		Name:       "Mouse",
		SKU:        "KB-001",
		PriceCents: 100,
		CategoryID: 1,
		Status:     domain.StatusActive,
	})
	assert.ErrorIs(s.T(), err, e.ErrSkuNotUnique)
}

func (s *CatalogStoreSuite) TestDelete() {
	id := s.mustCreate("Keyboard", "KB-001", 1)

	require.NoError(s.T(), s.productRepo.Delete(s.ctx, id))
	_, err := s.productRepo.GetByID(s.ctx, id)
	assert.ErrorIs(s.T(), err, e.ErrProductNotFound)

	// повторное удаление — не ошибка
	assert.NoError(s.T(), s.productRepo.Delete(s.ctx, id))
}

func TestCatalogStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(CatalogStoreSuite))
}
