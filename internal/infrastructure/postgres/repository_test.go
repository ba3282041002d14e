// Package postgres provides integration tests for the catalog repositories.
package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/audit"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/postgres"
)

// RepositorySuite is the test suite for the PostgreSQL repositories
type RepositorySuite struct {
	suite.Suite
	db         *postgres.DB
	categories category.Repository
	products   product.Repository
	ctx        context.Context
}

func TestRepositorySuite(t *testing.T) {
	// Skip if not in integration test mode
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	host := getEnvOrDefault("TEST_DB_HOST", "localhost")
	port := getEnvOrDefault("TEST_DB_PORT", "5432")
	user := getEnvOrDefault("TEST_DB_USER", "catalog")
	password := getEnvOrDefault("TEST_DB_PASSWORD", "catalog123")
	dbname := getEnvOrDefault("TEST_DB_NAME", "catalog_db_test")
	driver := getEnvOrDefault("TEST_DB_DRIVER", "pgx")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)

	db, err := sql.Open(driver, dsn)
	require.NoError(s.T(), err)
	require.NoError(s.T(), waitForDB(db, 30*time.Second))

	s.db = &postgres.DB{DB: db}
	s.categories = postgres.NewCategoryRepository(s.db)
	s.products = postgres.NewProductRepository(s.db)

	s.setupSchema()
}

func (s *RepositorySuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *RepositorySuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM mst_product")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM mst_category")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM audit_logs")
}

func (s *RepositorySuite) setupSchema() {
	require.NoError(s.T(), postgres.EnsureSchema(s.ctx, s.db))
}

func (s *RepositorySuite) TestCategory_SaveThenFind() {
	entity, _ := category.NewCategoryWithID("category_1", "Electronics", "Gadgets")

	saved, err := s.categories.Save(s.ctx, entity)
	require.NoError(s.T(), err)

	found, err := s.categories.FindByID(s.ctx, saved.ID())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Electronics", found.Name().String())
	assert.Equal(s.T(), "Gadgets", found.Description())
	assert.True(s.T(), found.IsActive())
	assert.WithinDuration(s.T(), entity.CreatedAt(), found.CreatedAt(), time.Millisecond)
}

func (s *RepositorySuite) TestCategory_SaveReplaces() {
	entity, _ := category.NewCategoryWithID("category_1", "Electronics", "")
	_, _ = s.categories.Save(s.ctx, entity)

	_ = entity.UpdateName("Devices")
	entity.Deactivate()
	_, err := s.categories.Save(s.ctx, entity)
	require.NoError(s.T(), err)

	found, err := s.categories.FindByName(s.ctx, "Devices")
	require.NoError(s.T(), err)
	assert.False(s.T(), found.IsActive())

	active, err := s.categories.FindActive(s.ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), active)
}

func (s *RepositorySuite) TestCategory_DuplicateName() {
	first, _ := category.NewCategory("Books", "")
	second, _ := category.NewCategory("Books", "")

	_, err := s.categories.Save(s.ctx, first)
	require.NoError(s.T(), err)

	_, err = s.categories.Save(s.ctx, second)
	assert.ErrorIs(s.T(), err, category.ErrAlreadyExists)
}

func (s *RepositorySuite) TestCategory_NotFoundAndDelete() {
	id, _ := category.NewID("category_404")

	_, err := s.categories.FindByID(s.ctx, id)
	assert.ErrorIs(s.T(), err, category.ErrNotFound)

	deleted, err := s.categories.Delete(s.ctx, id)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted)

	entity, _ := category.NewCategory("Temporary", "")
	_, _ = s.categories.Save(s.ctx, entity)
	deleted, err = s.categories.Delete(s.ctx, entity.ID())
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)
}

func (s *RepositorySuite) TestProduct_SaveAssignsID() {
	name, _ := product.NewName("Laptop")
	price, _ := product.NewPrice(1234.56)
	categoryID, _ := category.NewID("category_1")
	now := time.Now()
	draft := product.ReconstructProduct("", name, price, categoryID, "", now, now)

	saved, err := s.products.Save(s.ctx, draft)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), saved.ID())

	found, err := s.products.FindByID(s.ctx, saved.ID())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Laptop", found.Name().String())
	assert.Equal(s.T(), 1234.56, found.Price().Value())
	assert.Equal(s.T(), "category_1", found.CategoryID().String())
}

func (s *RepositorySuite) TestProduct_PriceRoundTrip() {
	name, _ := product.NewName("Cable")
	categoryID, _ := category.NewID("category_1")
	now := time.Now()

	for _, value := range []float64{0, 119.999, 0.001, 1e12, 1234567890123.5} {
		price, err := product.NewPrice(value)
		require.NoError(s.T(), err)

		saved, err := s.products.Save(s.ctx, product.ReconstructProduct("", name, price, categoryID, "", now, now))
		require.NoError(s.T(), err)

		found, err := s.products.FindByID(s.ctx, saved.ID())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), value, found.Price().Value())

		_, err = s.products.Delete(s.ctx, saved.ID())
		require.NoError(s.T(), err)
	}
}

func (s *RepositorySuite) TestProduct_FindByCategoryAndDelete() {
	laptop, _ := product.NewProduct("Laptop", 500, "category_1", "")
	phone, _ := product.NewProduct("Phone", 300, "category_1", "")
	guitar, _ := product.NewProduct("Guitar", 900, "category_2", "")
	for _, p := range []*product.Product{laptop, phone, guitar} {
		_, err := s.products.Save(s.ctx, p)
		require.NoError(s.T(), err)
	}

	categoryID, _ := category.NewID("category_1")
	inCategory, err := s.products.FindByCategoryID(s.ctx, categoryID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), inCategory, 2)

	all, err := s.products.FindAll(s.ctx)
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 3)

	deleted, err := s.products.Delete(s.ctx, guitar.ID())
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	_, err = s.products.FindByID(s.ctx, guitar.ID())
	assert.ErrorIs(s.T(), err, product.ErrNotFound)
}

func (s *RepositorySuite) TestProduct_DuplicateNameInCategory() {
	first, _ := product.NewProduct("Laptop", 500, "category_1", "")
	second, _ := product.NewProduct("Laptop", 600, "category_1", "")
	other, _ := product.NewProduct("Laptop", 600, "category_2", "")

	_, err := s.products.Save(s.ctx, first)
	require.NoError(s.T(), err)

	_, err = s.products.Save(s.ctx, second)
	assert.ErrorIs(s.T(), err, product.ErrDuplicateName)

	_, err = s.products.Save(s.ctx, other)
	assert.NoError(s.T(), err)
}

func (s *RepositorySuite) TestAudit_RecordThenRead() {
	logger := audit.NewPostgresLogger(s.db)
	recorder := audit.NewRecorder(logger)
	ctx := audit.WithRequestContext(s.ctx, "req-1", "127.0.0.1", "suite")

	require.NoError(s.T(), recorder.Publish(ctx, shared.NewEvent(shared.EventProductCreated, "product_1",
		map[string]interface{}{"name": "Laptop"})))
	time.Sleep(2 * time.Millisecond)
	require.NoError(s.T(), recorder.Publish(ctx, shared.NewEvent(shared.EventProductDeleted, "product_1", nil)))

	entries, err := logger.GetByRecordID(s.ctx, "product", "product_1")
	require.NoError(s.T(), err)
	require.Len(s.T(), entries, 2)
	assert.Equal(s.T(), audit.ActionDelete, entries[0].Action)
	assert.Equal(s.T(), audit.ActionCreate, entries[1].Action)
	assert.Equal(s.T(), "Laptop", entries[1].Data["name"])
	assert.Equal(s.T(), "req-1", entries[1].RequestID)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func waitForDB(db *sql.DB, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := db.Ping(); err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("database not ready within %v", timeout)
}
