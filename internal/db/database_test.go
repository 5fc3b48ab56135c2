package db

import (
	"testing"
	"time"

	"github.com/mallow/storefront/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		CleanupTestDB(testDB)
	})

	sqlDB, err := testDB.DB()
	require.NoError(t, err)

	configurePool(sqlDB, &config.DatabaseConfig{MaxOpenConns: 7, MaxIdleConns: 2, ConnMaxLifetime: time.Minute})
	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)

	// unset limits leave the current pool alone
	configurePool(sqlDB, &config.DatabaseConfig{})
	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel("INFO"))
	assert.Equal(t, logger.Warn, gormLogLevel("warn"))
	assert.Equal(t, logger.Error, gormLogLevel("error"))
	assert.Equal(t, logger.Silent, gormLogLevel(""))
	assert.Equal(t, logger.Silent, gormLogLevel("verbose"))
}
