package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "worldview.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

func TestPreferenceRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, ok, err := st.Preference(ctx, "preferred-theme")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.SetPreference(ctx, "preferred-theme", "dark"))
	value, ok, err := st.Preference(ctx, "preferred-theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", value)

	require.NoError(t, st.SetPreference(ctx, "preferred-theme", "light"))
	value, _, err = st.Preference(ctx, "preferred-theme")
	require.NoError(t, err)
	require.Equal(t, "light", value)
}

func TestDeletePreference(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.DeletePreference(ctx, "missing"))
	require.NoError(t, st.SetPreference(ctx, "preferred-theme", "dark"))
	require.NoError(t, st.DeletePreference(ctx, "preferred-theme"))

	_, ok, err := st.Preference(ctx, "preferred-theme")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPreferencePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldview.db")
	ctx := context.Background()

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SetPreference(ctx, "preferred-theme", "dark"))
	require.NoError(t, st.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	value, ok, err := reopened.Preference(ctx, "preferred-theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", value)
}
