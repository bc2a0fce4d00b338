package checks

import (
	"errors"
	"regexp"
	"testing"

	"bom-reconciler/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type widget struct {
	ID    uint    `gorm:"column:id;primaryKey"`
	Name  string  `gorm:"column:name"`
	Price float64 `gorm:"column:price"`
}

func (widget) TableName() string {
	return "widgets"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, widget{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_SQLiteMigrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))

	report, err := CheckSchema(db, widget{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["widgets"].Status)
	assert.Empty(t, report.Tables["widgets"].MissingColumns)
}

func TestCheckSchema_SQLiteMissingTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSchema(db, &widget{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"id", "name", "price"}, report.Tables["widgets"].MissingColumns)
}

func TestCheckSchema_MySQLMissingColumn(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "int(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("name", "varchar(255)", "YES", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `widgets`")).WillReturnRows(rows)

	report, err := CheckSchema(db, widget{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["widgets"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"price"}, tbl.MissingColumns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_MySQLInspectFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `widgets`")).WillReturnError(errors.New("table doesn't exist"))

	report, err := CheckSchema(db, widget{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "widgets")
}
