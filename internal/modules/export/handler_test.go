package export

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	r := gin.New()
	h := NewHandler(db)
	api := r.Group("/api/v1")
	h.RegisterPublicRoutes(api)
	h.RegisterUserRoutes(api)
	return r, mock
}

var formColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"title", "description", "category", "fields",
	"is_public", "requires_auth", "created_by",
}

func formRow(requiresAuth bool) *sqlmock.Rows {
	now := time.Now()
	fields := `[{"id":"name","label":"Name","type":"text","required":true}]`
	return sqlmock.NewRows(formColumns).
		AddRow("form-1", now, now, nil, "Building Permit", "Apply here", "application", fields,
			true, requiresAuth, nil)
}

func TestExportBlankEndpoint(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").WillReturnRows(formRow(false))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forms/form-1/export/blank", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Building_Permit_blank.pdf")
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestExportBlankGatedFormAnonymous(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").WillReturnRows(formRow(true))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forms/form-1/export/blank", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportBlankUnknownForm(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").
		WillReturnRows(sqlmock.NewRows(formColumns))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forms/missing/export/blank", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportSubmissionRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/sub-1/export", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
