package tokenfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	s := New(dir)

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file means signed out")

	require.NoError(t, s.Save("tok-1"))
	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, s.Save(""))
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, s.Save(""), "clearing twice is fine")
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not json"), 0o600))

	_, err := New(dir).Load()
	assert.ErrorContains(t, err, "decode token file")
}

func TestStore_SessionPersistsChanges(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save("tok-1"))

	sess, err := s.Session(nil)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.AccessToken(context.Background()))

	sess.Set("tok-2")
	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	sess.Invalidate(context.Background())
	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
