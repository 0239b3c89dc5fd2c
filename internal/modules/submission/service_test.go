package submission

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsp-forms/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewService(db), mock
}

var submissionColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"form_id", "user_id", "submitter_name", "submitter_email",
	"data", "status", "submitted_at",
}

func submissionRow(id string, status models.SubmissionStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(submissionColumns).
		AddRow(id, now, now, nil, "form-1", nil, "Jane Doe", "jane@example.com", `{}`, string(status), now)
}

func TestUpdateStatusTransition(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM `submissions`").
		WillReturnRows(submissionRow("sub-1", models.StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `submissions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub, err := svc.UpdateStatus("sub-1", models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, sub.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIdempotent(t *testing.T) {
	svc, mock := newTestService(t)

	// Same state again: no UPDATE is issued and the call still succeeds.
	mock.ExpectQuery("SELECT (.+) FROM `submissions`").
		WillReturnRows(submissionRow("sub-1", models.StatusApproved))

	sub, err := svc.UpdateStatus("sub-1", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, sub.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusMissing(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM `submissions`").
		WillReturnRows(sqlmock.NewRows(submissionColumns))

	_, err := svc.UpdateStatus("nope", models.StatusReviewed)
	assert.ErrorIs(t, err, errSubmissionMissing)
}

func TestUpdateStatusUnknownLabel(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateStatus("sub-1", models.SubmissionStatus("archived"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

var formColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"title", "description", "category", "fields",
	"is_public", "requires_auth", "created_by",
}

func formRow(requiresAuth bool) *sqlmock.Rows {
	now := time.Now()
	fields := `[{"id":"event","label":"Event","type":"text","required":true}]`
	return sqlmock.NewRows(formColumns).
		AddRow("form-1", now, now, nil, "Event Registration", "", "registration", fields,
			true, requiresAuth, nil)
}

func TestSubmitPersistsPending(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").WillReturnRows(formRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `submissions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	data := models.ValueMap{
		models.SyntheticNameKey:  models.TextValue("Jane Doe"),
		models.SyntheticEmailKey: models.TextValue("jane@example.com"),
		"event":                  models.TextValue("Spring Fair"),
	}
	sub, err := svc.Submit("form-1", data, Submitter{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, sub.Status)
	assert.False(t, sub.SubmittedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitGatedFormAnonymous(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").WillReturnRows(formRow(true))

	_, err := svc.Submit("form-1", models.ValueMap{
		models.SyntheticNameKey:  models.TextValue("Jane Doe"),
		models.SyntheticEmailKey: models.TextValue("jane@example.com"),
		"event":                  models.TextValue("x"),
	}, Submitter{})
	assert.ErrorIs(t, err, errAccessDenied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitUnknownForm(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM `forms`").
		WillReturnRows(sqlmock.NewRows(formColumns))

	_, err := svc.Submit("missing", models.ValueMap{}, Submitter{})
	assert.ErrorIs(t, err, errFormMissing)
}
