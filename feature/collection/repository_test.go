package collection

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

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

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows(Columns)
}

func TestRepositoryGet(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `collected_items` WHERE id = \\?").
		WillReturnRows(itemRows().AddRow(238, true, false, true, false, 5, 3))

	it, err := repo.Get(context.Background(), 238)
	require.NoError(t, err)
	assert.Equal(t, CollectedItem{ID: 238, Seen: true, HaveRecipe: true, LicenseProgress: 5, StorageAmount: 3}, it)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetDefault(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `collected_items` WHERE id = \\?").
		WillReturnRows(itemRows())

	it, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, Default(42), it)
}

func TestRepositoryGetError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `collected_items`").WillReturnError(assert.AnError)

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRepositoryAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `collected_items` ORDER BY id").
		WillReturnRows(itemRows().
			AddRow(100, true, true, false, true, 0, 0).
			AddRow(238, true, false, false, false, 5, 0))

	items, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Licensed)
	assert.Equal(t, 5, items[1].LicenseProgress)
}

func TestRepositorySave(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `collected_items` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), CollectedItem{ID: 238, Seen: true, LicenseProgress: 4})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryObserve(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `collected_items` WHERE id = \\?").
		WillReturnRows(itemRows().AddRow(238, false, false, true, false, 5, 0))
	mock.ExpectExec("INSERT INTO `collected_items`").
		WithArgs(238, true, false, true, false, 5, 0).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	it, err := repo.Observe(context.Background(), 238)
	require.NoError(t, err)
	assert.True(t, it.Seen)
	assert.True(t, it.HaveRecipe)
	assert.Equal(t, 5, it.LicenseProgress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryMarkLicensed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `collected_items` WHERE id = \\?").
		WillReturnRows(itemRows())
	mock.ExpectExec("INSERT INTO `collected_items`").
		WithArgs(7, true, true, false, false, 0, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	it, err := repo.MarkLicensed(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, CollectedItem{ID: 7, Seen: true, Licensed: true}, it)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryExport(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `collected_items`").
		WillReturnRows(itemRows().AddRow(238, true, false, false, false, 5, 0))

	c, err := repo.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]CollectedItem{238: {ID: 238, Seen: true, LicenseProgress: 5}}, c.Items)
}

func TestRepositoryImport(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `collected_items`").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO `collected_items`").
		WithArgs(100, true, true, false, false, 0, 0, 238, true, false, false, false, 5, 0).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.Import(context.Background(), Collection{Items: map[int]CollectedItem{
		238: {Seen: true, LicenseProgress: 5},
		100: {ID: 100, Seen: true, Licensed: true},
	}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryImportEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `collected_items`").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.Import(context.Background(), Collection{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryImportRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `collected_items`").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO `collected_items`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Import(context.Background(), Collection{Items: map[int]CollectedItem{1: {Seen: true}}})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryImportRejectsInvalid(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	err := repo.Import(context.Background(), Collection{Items: map[int]CollectedItem{1: {ID: 2}}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
