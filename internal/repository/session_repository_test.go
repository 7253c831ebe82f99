package repository_test

import (
	"context"
	"testing"

	"taskhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSessionRepository_DeleteExpired(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	sessionRepo := repository.NewSessionRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions" WHERE expires_at <`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	// Act
	removed, err := sessionRepo.DeleteExpired(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
