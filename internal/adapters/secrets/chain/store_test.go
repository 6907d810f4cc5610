package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/aminoacids/internal/domain"
	portmocks "github.com/bnema/aminoacids/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const email = "ada@example.test"

func newChain(t *testing.T) (*Store, *portmocks.MockCredentialStore, *portmocks.MockCredentialStore) {
	t.Helper()

	primary := portmocks.NewMockCredentialStore(t)
	fallback := portmocks.NewMockCredentialStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)
	return store, primary, fallback
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newChain(t)
	primary.EXPECT().Get(mock.Anything, email).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, email).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, email).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetNotFoundEverywhereIsCredentialNotFound(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, email).Return("", fmt.Errorf("pass: %w", domain.ErrCredentialNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, email).Return("", fmt.Errorf("file: %w", domain.ErrCredentialNotFound)).Once()

	_, err := store.Get(context.Background(), email)
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreGetJoinsErrorsWhenBackendsFail(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, email).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, email).Return("", fmt.Errorf("file: %w", domain.ErrCredentialNotFound)).Once()

	_, err := store.Get(context.Background(), email)
	require.Error(t, err)
	assert.ErrorContains(t, err, "load credential")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreGetDoesNotFallBackOnContextCancellation(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, email).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), email)
	require.ErrorIs(t, err, context.Canceled)
	fallback.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestStorePutStopsAtFirstSuccess(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Put(mock.Anything, email, "pw").Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Put(mock.Anything, email, "pw").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), email, "pw"))
}

func TestStorePutReportsEveryFailure(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Put(mock.Anything, email, "pw").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, email, "pw").Return(errors.New("disk full")).Once()

	err := store.Put(context.Background(), email, "pw")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "disk full")
}

func TestStoreDeleteReachesEveryBackend(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Delete(mock.Anything, email).Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Delete(mock.Anything, email).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), email))
}

func TestStoreDeleteFailsWhenNoBackendSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Delete(mock.Anything, email).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, email).Return(errors.New("permission denied")).Once()

	err := store.Delete(context.Background(), email)
	assert.ErrorContains(t, err, "delete credential")
}

func TestNewStoreRejectsMissingBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore()
	assert.ErrorIs(t, err, errNoBackends)

	_, err = NewStore(portmocks.NewMockCredentialStore(t), nil)
	assert.ErrorContains(t, err, "credential backend 1 is nil")
}
