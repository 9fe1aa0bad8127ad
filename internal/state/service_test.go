package state_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/grocerly/grocery-sync-server/internal/state"
	"github.com/grocerly/grocery-sync-server/internal/state/mocks"
)

const testAccount = "user@example.com"

func newInitializedService(t *testing.T) state.Service {
	t.Helper()

	svc := state.NewService(state.NewFilePersistence(t.TempDir()), testAccount)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

func TestService_RequiresInitialize(t *testing.T) {
	t.Parallel()

	svc := state.NewService(state.NewFilePersistence(t.TempDir()), testAccount)

	_, err := svc.GetStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	err = svc.SetPhase(context.Background(), state.PhasePending, "", "")
	require.Error(t, err)
}

func TestService_FirstRunStartsEmpty(t *testing.T) {
	t.Parallel()

	svc := newInitializedService(t)

	status, err := svc.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Phase)
	assert.Zero(t, status.AttemptCount)
}

func TestService_PhaseTransitionsPersist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	persistence := state.NewFilePersistence(dir)
	ctx := context.Background()

	svc := state.NewService(persistence, testAccount)
	require.NoError(t, svc.Initialize(ctx))

	require.NoError(t, svc.SetPhase(ctx, state.PhasePending, "", ""))
	require.NoError(t, svc.SetPhase(ctx, state.PhaseFailed, "remote unreachable", "request"))

	status, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseFailed, status.Phase)
	assert.Equal(t, "remote unreachable", status.Message)
	assert.Equal(t, "request", status.Reason)
	assert.Equal(t, 1, status.AttemptCount)
	assert.NotNil(t, status.LastAttempt)

	// A fresh service over the same directory sees the persisted state
	reloaded := state.NewService(persistence, testAccount)
	require.NoError(t, reloaded.Initialize(ctx))

	status, err = reloaded.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseFailed, status.Phase)
	assert.Equal(t, "request", status.Reason)
}

func TestService_RecordSuccessResetsFailureState(t *testing.T) {
	t.Parallel()

	svc := newInitializedService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPhase(ctx, state.PhasePending, "", ""))
	require.NoError(t, svc.SetPhase(ctx, state.PhaseFailed, "remote unreachable", "request"))
	require.NoError(t, svc.SetPhase(ctx, state.PhasePending, "", ""))
	require.NoError(t, svc.RecordSuccess(ctx, 4))

	status, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseReady, status.Phase)
	assert.Empty(t, status.Message)
	assert.Empty(t, status.Reason)
	assert.Zero(t, status.AttemptCount)
	assert.Equal(t, 4, status.ListCount)
	assert.NotNil(t, status.LastSyncTime)
}

func TestService_InterruptedPendingLoadsAsFailed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	persistence := state.NewFilePersistence(dir)
	ctx := context.Background()

	// Simulate a run that died mid-attempt
	require.NoError(t, persistence.SaveStatus(ctx, testAccount, &state.SyncStatus{
		Phase:        state.PhasePending,
		AttemptCount: 2,
	}))

	svc := state.NewService(persistence, testAccount)
	require.NoError(t, svc.Initialize(ctx))

	status, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseFailed, status.Phase)
	assert.Contains(t, status.Message, "interrupted")

	// The recovery is persisted, not just cached
	persisted, err := persistence.LoadStatus(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseFailed, persisted.Phase)
}

func TestService_InitializeSurfacesLoadError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	persistence := mocks.NewMockPersistence(ctrl)
	persistence.EXPECT().
		LoadStatus(gomock.Any(), testAccount).
		Return(nil, fmt.Errorf("disk gone"))

	svc := state.NewService(persistence, testAccount)

	err := svc.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load sync status")
}

func TestService_SetPhaseKeepsCacheOnSaveError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	persistence := mocks.NewMockPersistence(ctrl)
	persistence.EXPECT().
		LoadStatus(gomock.Any(), testAccount).
		Return(&state.SyncStatus{Phase: state.PhaseReady}, nil)
	persistence.EXPECT().
		SaveStatus(gomock.Any(), testAccount, gomock.Any()).
		Return(fmt.Errorf("disk full"))

	svc := state.NewService(persistence, testAccount)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	err := svc.SetPhase(ctx, state.PhaseFailed, "remote unreachable", "request")
	require.Error(t, err)

	// The cached status is untouched when persistence rejects the write
	status, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseReady, status.Phase)
}

func TestService_GetStatusReturnsCopy(t *testing.T) {
	t.Parallel()

	svc := newInitializedService(t)
	ctx := context.Background()

	first, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	first.Phase = state.PhaseReauthRequired

	second, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, state.PhaseReauthRequired, second.Phase)
}
