package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func userArgs(userID, query string) []driver.Value {
	args := repeatArg(userID, len(regexp.MustCompile(`\?`).FindAllString(query, -1)))
	values := make([]driver.Value, len(args))
	for i, a := range args {
		values[i] = a
	}
	return values
}

func TestDeleteUserCascade_ContinuesPastFailedSteps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)
	userID := "user-1"

	for _, step := range userCascade {
		exp := mock.ExpectExec("^DELETE FROM " + step.name + " ").WithArgs(userArgs(userID, step.query)...)
		if step.name == "weight_goals" || step.name == "competitions" {
			exp.WillReturnError(errors.New(`relation "` + step.name + `" does not exist`))
			continue
		}
		exp.WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(`^DELETE FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	report, err := repo.DeleteUserCascade(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, report, len(userCascade)+1)
	failed := map[string]string{}
	for _, step := range report {
		if step.Error != "" {
			failed[step.Step] = step.Error
		}
	}
	assert.Len(t, failed, 2)
	assert.Contains(t, failed, "weight_goals")
	assert.Contains(t, failed, "competitions")
	assert.Equal(t, "users", report[len(report)-1].Step)
}

func TestDeleteUserCascade_UserDeleteFailureFailsRequest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)
	userID := "user-2"

	for _, step := range userCascade {
		mock.ExpectExec("^DELETE FROM " + step.name + " ").
			WithArgs(userArgs(userID, step.query)...).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`^DELETE FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnError(errors.New("connection reset"))

	report, err := repo.DeleteUserCascade(context.Background(), userID)
	require.Error(t, err)
	assert.Len(t, report, len(userCascade), "every dependent step still ran")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserCascade_MissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)

	for _, step := range userCascade {
		mock.ExpectExec("^DELETE FROM " + step.name + " ").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`^DELETE FROM users`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.DeleteUserCascade(context.Background(), "ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
