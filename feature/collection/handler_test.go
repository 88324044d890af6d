package collection

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	app := fiber.New()
	db, mock := setupMockDB(t)
	svc := NewService(NewRepository(db), zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app, mock
}

func TestHandleList(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.ExpectQuery("SELECT \\* FROM `collected_items`").
		WillReturnRows(itemRows().AddRow(238, true, false, false, false, 5, 0))

	resp, err := app.Test(httptest.NewRequest("GET", "/collection", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []CollectedItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Len(t, items, 1)
}

func TestHandleGet(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.ExpectQuery("SELECT \\* FROM `collected_items` WHERE id = \\?").WillReturnRows(itemRows())

	resp, err := app.Test(httptest.NewRequest("GET", "/collection/42", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var it CollectedItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&it))
	assert.Equal(t, Default(42), it)

	resp, err = app.Test(httptest.NewRequest("GET", "/collection/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandlePut(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"saved", "/collection/238", `{"seen": true, "license_progress": 5}`, 200},
		{"id mismatch", "/collection/238", `{"id": 1}`, 400},
		{"negative", "/collection/238", `{"storage_amount": -2}`, 400},
		{"bad body", "/collection/238", `{`, 400},
		{"bad id", "/collection/0", `{}`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mock := setupTestApp(t)
			if tt.status == 200 {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `collected_items`").
					WithArgs(238, true, false, false, false, 5, 0).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			req := httptest.NewRequest("PUT", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandleObserveAndLicensed(t *testing.T) {
	for _, path := range []string{"/collection/7/observe", "/collection/7/licensed"} {
		t.Run(path, func(t *testing.T) {
			app, mock := setupTestApp(t)
			mock.ExpectBegin()
			mock.ExpectQuery("SELECT \\* FROM `collected_items`").WillReturnRows(itemRows())
			mock.ExpectExec("INSERT INTO `collected_items`").WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			resp, err := app.Test(httptest.NewRequest("POST", path, nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			var it CollectedItem
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&it))
			assert.True(t, it.Seen)
			assert.Equal(t, strings.HasSuffix(path, "licensed"), it.Licensed)
		})
	}
}

func TestHandleExport(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.ExpectQuery("SELECT \\* FROM `collected_items`").
		WillReturnRows(itemRows().AddRow(238, true, false, false, false, 5, 0))

	resp, err := app.Test(httptest.NewRequest("GET", "/collection/export", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["items"], "238")
}

func TestHandleImport(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `collected_items`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `collected_items`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("POST", "/collection/import", strings.NewReader(`{"items": {"238": {"seen": true}}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())

	req = httptest.NewRequest("POST", "/collection/import", strings.NewReader(`{"items": {"238": {"id": 1}}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
