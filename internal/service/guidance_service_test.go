package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

func setupGuidanceService(t *testing.T) (*gorm.DB, GuidanceService, ShortlistService) {
	t.Helper()

	db := openTestDB(t, "guidance_service")
	entries := repository.NewShortlistRepository(db)
	universities := repository.NewUniversityRepository(db)
	tasks := repository.NewTaskRepository(db)
	guidance := NewGuidanceService(entries, tasks, zerolog.Nop())
	shortlist := NewShortlistService(entries, universities, nil, newValidator(), zerolog.Nop())
	return db, guidance, shortlist
}

func TestGuidanceGateClosedWithoutLock(t *testing.T) {
	db, guidance, shortlist := setupGuidanceService(t)
	user := createTestUser(t, db, "amina@example.com")
	university := createTestUniversity(t, db, "Target U", 3.5)

	// Even a populated shortlist does not open the gate.
	_, err := shortlist.Add(context.Background(), user.ID, dto.ShortlistAddRequest{
		UniversityID: university.ID, Category: "target", RiskLevel: "TARGET",
	})
	require.NoError(t, err)

	response, err := guidance.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, response.Unlocked)
	require.Nil(t, response.Target)
	require.Empty(t, response.Tasks)
	require.NotEmpty(t, response.LockedReason)
}

func TestGuidanceGateOpensOnLock(t *testing.T) {
	db, guidance, shortlist := setupGuidanceService(t)
	user := createTestUser(t, db, "amina@example.com")
	university := createTestUniversity(t, db, "Target U", 3.5)

	entry, err := shortlist.Add(context.Background(), user.ID, dto.ShortlistAddRequest{
		UniversityID: university.ID, Category: "target", RiskLevel: "TARGET",
	})
	require.NoError(t, err)

	task := models.Task{UserID: user.ID, Title: "Request transcripts", Status: models.TaskStatusPending, Priority: 2}
	require.NoError(t, db.Create(&task).Error)

	_, err = shortlist.SetLock(context.Background(), user.ID, dto.ShortlistLockRequest{ShortlistID: entry.ID, Lock: true})
	require.NoError(t, err)

	response, err := guidance.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, response.Unlocked)
	require.NotNil(t, response.Target)
	require.Equal(t, "Target U", response.Target.University.Name)
	require.Len(t, response.Tasks, 1)
	require.Empty(t, response.LockedReason)

	// Unlocking closes the gate again.
	_, err = shortlist.SetLock(context.Background(), user.ID, dto.ShortlistLockRequest{ShortlistID: entry.ID, Lock: false})
	require.NoError(t, err)

	response, err = guidance.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, response.Unlocked)
}
