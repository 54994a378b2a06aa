package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-go/internal/app"
	"newsletter-go/internal/config"
	"newsletter-go/internal/database"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/repository"
)

// Runs against a real Postgres described by configuration/local.yaml.
// Enable with APP_TEST_DATABASE=1.
func TestSubscribePersistsToPostgres(t *testing.T) {
	if os.Getenv("APP_TEST_DATABASE") != "1" {
		t.Skip("APP_TEST_DATABASE not set")
	}

	ctx := context.Background()
	logger := logging.NewDiscardLogger()

	settings, err := config.LoadEnvironment("../../configuration", config.EnvironmentLocal)
	require.NoError(t, err)
	settings.Database.DatabaseName = uuid.NewString()

	require.NoError(t, database.CreateDatabase(ctx, settings.Database))

	pool, err := database.Connect(ctx, settings.Database)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, "../../migrations", logger))

	application := app.Build(&app.Config{
		ServiceName: "test-newsletter",
		Logger:      logger,
		GinMode:     gin.TestMode,
		Repository:  repository.NewPostgresSubscriptionRepository(db),
	})
	server := httptest.NewServer(application.Router())
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/subscriptions", "application/x-www-form-urlencoded",
		strings.NewReader("name=le%20guin&email=ursula_le_guin%40gmail.com"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var name, email string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT email, name FROM subscriptions").Scan(&email, &name))
	assert.Equal(t, "ursula_le_guin@gmail.com", email)
	assert.Equal(t, "le guin", name)

	resp, err = http.Post(server.URL+"/subscriptions", "application/x-www-form-urlencoded",
		strings.NewReader("name=&email=other%40gmail.com"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscriptions").Scan(&count))
	assert.Equal(t, 1, count)
}
