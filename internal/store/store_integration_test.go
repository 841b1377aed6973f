package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/abgdnv/gocatalog/internal/store/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "CATALOG_SKIP_INTEGRATION_TESTS"

// ProductStoreSuite is a test suite for the PgStore implementation.
type ProductStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	store       ProductStore
	logger      *slog.Logger
	ctx         context.Context
}

// SetupSuite starts PostgreSQL, applies the embedded migrations and builds the store.
func (s *ProductStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

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
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	require.NoError(s.T(), migrations.Up(connStr), "Failed to apply migrations")
	// a second run must be a no-op
	require.NoError(s.T(), migrations.Up(connStr))

	s.store = NewPgStore(s.dbPool)
}

// TearDownSuite closes the pool and terminates the container.
func (s *ProductStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// SetupTest truncates the products table and resets the id sequence.
func (s *ProductStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate products table")
}

// TestProductStoreIntegration runs the PgStore integration tests.
func TestProductStoreIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(ProductStoreSuite))
}

func (s *ProductStoreSuite) createTestProduct(name string, stock int32, price float64) *db.Product {
	s.T().Helper()
	product, err := s.store.Create(s.ctx, name, name+" description", stock, price)
	require.NoError(s.T(), err, "createTestProduct helper failed to create product")
	return product
}

func (s *ProductStoreSuite) TestCreateAndFindByID() {
	created := s.createTestProduct("Espresso machine", 12, 349.99)

	require.NotZero(s.T(), created.ID)
	require.Equal(s.T(), "Espresso machine", created.Name)
	require.Equal(s.T(), "Espresso machine description", created.Description)
	require.Equal(s.T(), int32(12), created.Stock)
	require.Equal(s.T(), 349.99, created.Price)
	require.NotNil(s.T(), created.CreatedAt)

	fetched, err := s.store.FindByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), created.ID, fetched.ID)
	require.Equal(s.T(), created.Name, fetched.Name)
	require.WithinDuration(s.T(), *created.CreatedAt, *fetched.CreatedAt, time.Second)
}

func (s *ProductStoreSuite) TestFindByID_NotFound() {
	_, err := s.store.FindByID(s.ctx, 9999)
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestFindAll_Paging() {
	s.createTestProduct("Product A", 1, 10)
	s.createTestProduct("Product B", 2, 20)
	s.createTestProduct("Product C", 3, 30)

	page, err := s.store.FindAll(s.ctx, 0, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), page, 2)
	assert.Equal(s.T(), "Product A", page[0].Name)
	assert.Equal(s.T(), "Product B", page[1].Name)

	page, err = s.store.FindAll(s.ctx, 2, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), page, 1)
	assert.Equal(s.T(), "Product C", page[0].Name)

	page, err = s.store.FindAll(s.ctx, 3, 2)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), page)
	assert.Empty(s.T(), page)
}

func (s *ProductStoreSuite) TestUpdate_Partial() {
	created := s.createTestProduct("Kettle", 5, 45)

	newStock := int32(1)
	updated, err := s.store.Update(s.ctx, created.ID, UpdateParams{Stock: &newStock})
	require.NoError(s.T(), err)

	require.Equal(s.T(), created.ID, updated.ID)
	require.Equal(s.T(), created.Name, updated.Name)
	require.Equal(s.T(), created.Description, updated.Description)
	require.Equal(s.T(), created.Price, updated.Price)
	require.Equal(s.T(), newStock, updated.Stock)

	newName, newPrice := "Electric kettle", 49.5
	updated, err = s.store.Update(s.ctx, created.ID, UpdateParams{Name: &newName, Price: &newPrice})
	require.NoError(s.T(), err)
	require.Equal(s.T(), newName, updated.Name)
	require.Equal(s.T(), newPrice, updated.Price)
	require.Equal(s.T(), newStock, updated.Stock)
}

func (s *ProductStoreSuite) TestUpdate_NotFound() {
	name := "ghost"
	_, err := s.store.Update(s.ctx, 9999, UpdateParams{Name: &name})
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestDeleteByID() {
	created := s.createTestProduct("Toaster", 3, 25)

	deleted, err := s.store.DeleteByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), created.ID, deleted)

	_, err = s.store.FindByID(s.ctx, created.ID)
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestDeleteByID_NotFound() {
	_, err := s.store.DeleteByID(s.ctx, 9999)
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}
