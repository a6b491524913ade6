package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(errors.New("otro error")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%perro%`, likePattern("perro"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestPeriodExpr(t *testing.T) {
	expr, err := periodExpr("month")
	assert.NoError(t, err)
	assert.Equal(t, "YYYY-MM", expr)
	_, err = periodExpr("week")
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	raw, err := migrationsFS.ReadFile("migrations/0001_init.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(raw), "CREATE TABLE IF NOT EXISTS stock_movements")
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("6f1c3c1e-6a43-4b7e-9d0a-1f1c2b3d4e5f"))
	assert.False(t, isUUID("no-existe"))
}
