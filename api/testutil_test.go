package api

import (
	"fmt"
	"sync/atomic"
	"testing"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB 为每个测试建立独立的内存库并替换全局连接
func setupTestDB(t *testing.T) func() {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Revenue{},
		&models.Expense{},
		&models.Product{},
		&models.Employee{},
		&models.Customer{},
		&models.Appointment{},
		&models.Task{},
		&models.InsightReport{},
	))

	old := database.DB
	database.DB = db
	return func() {
		database.DB = old
		sqlDB.Close()
	}
}
