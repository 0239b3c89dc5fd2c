package submission

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsp-forms/core/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, mock := newTestService(t)
	r := gin.New()
	h := NewHandler(svc)
	api := r.Group("/api/v1")
	h.RegisterPublicRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin"))
	return r, mock
}

func TestSubmitEndpointAnonymous(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").WillReturnRows(formRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `submissions`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload := `{"data":{"_name":"Jane Doe","_email":"jane@example.com","event":"Spring Fair"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/form-1/submissions", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"status":"pending"`)
	assert.Contains(t, body, `"submitter_name":"Jane Doe"`)
	assert.Contains(t, body, `"_name":"Jane Doe"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitEndpointGatedForm(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").WillReturnRows(formRow(true))

	payload := `{"data":{"_name":"Jane","_email":"j@e.com","event":"x"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/form-1/submissions", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitEndpointMissingRequiredField(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").WillReturnRows(formRow(false))

	payload := `{"data":{"_name":"Jane Doe","_email":"jane@example.com"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/form-1/submissions", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "required")
}

func TestUpdateStatusEndpoint(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `submissions`").
		WillReturnRows(submissionRow("sub-1", models.StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `submissions` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload := `{"status":"rejected"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/submissions/sub-1/status", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusEndpointUnknownLabel(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := `{"status":"archived"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/submissions/sub-1/status", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateStatusEndpointMissing(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `submissions`").
		WillReturnRows(sqlmock.NewRows(submissionColumns))

	payload := `{"status":"approved"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/submissions/missing/status", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
