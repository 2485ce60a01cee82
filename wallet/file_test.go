package wallet

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/legacy-wallet/internal/account"
	"github.com/AlexZinkM/legacy-wallet/internal/testutil"
)

func TestCreateAndLoadFile(t *testing.T) {
	s := newSerializer(t)
	keys := testutil.NewAccountKeys(t)
	path := filepath.Join(t.TempDir(), "main"+FileExt)

	require.NoError(t, s.CreateFile(path, account.New(keys, createTime), true, newHistory(), []byte("cache"), password))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())

	res, err := s.LoadFile(path, password)
	require.NoError(t, err)
	assert.Equal(t, keys, res.Keys)
	assert.Equal(t, []byte("cache"), res.Cache)
	assert.Equal(t, 2, res.History.TransactionCount())
}

func TestCreateFileChecks(t *testing.T) {
	s := newSerializer(t)
	acc := account.New(testutil.NewAccountKeys(t), createTime)
	dir := t.TempDir()

	t.Run("extension", func(t *testing.T) {
		err := s.CreateFile(filepath.Join(dir, "main.txt"), acc, false, nil, nil, password)
		require.Error(t, err)
		assert.Contains(t, err.Error(), FileExt)
	})

	t.Run("existing non-empty file", func(t *testing.T) {
		path := filepath.Join(dir, "existing"+FileExt)
		require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o600))

		err := s.CreateFile(path, acc, false, nil, nil, password)
		require.Error(t, err)
		assert.True(t, IsFileExistsError(err))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(content))
	})

	t.Run("existing empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty"+FileExt)
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		assert.NoError(t, s.CreateFile(path, acc, false, nil, nil, password))
	})
}

func TestSaveFileReplaces(t *testing.T) {
	s := newSerializer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "main"+FileExt)

	first := testutil.NewAccountKeys(t)
	second := testutil.NewAccountKeys(t)
	require.NoError(t, s.SaveFile(path, account.New(first, createTime), false, nil, nil, password))
	require.NoError(t, s.SaveFile(path, account.New(second, createTime), false, nil, nil, password))

	res, err := s.LoadFile(path, password)
	require.NoError(t, err)
	assert.Equal(t, second, res.Keys)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "main"+FileExt, entries[0].Name())
}

func TestSaveFileFailureKeepsOriginal(t *testing.T) {
	s := newSerializer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "main"+FileExt)
	keys := testutil.NewAccountKeys(t)
	require.NoError(t, s.SaveFile(path, account.New(keys, createTime), false, nil, nil, password))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	weak := &Serializer{kdf: testutil.FastKDF(), log: s.log}
	weak.kdf.N = 3 // not a power of two
	require.Error(t, weak.SaveFile(path, account.New(keys, createTime), false, nil, nil, password))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(before, after))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadFileErrors(t *testing.T) {
	s := newSerializer(t)
	dir := t.TempDir()

	_, err := s.LoadFile(filepath.Join(dir, "missing"+FileExt), password)
	require.Error(t, err)
	assert.Equal(t, "file does not exist", err.Error())

	empty := filepath.Join(dir, "empty"+FileExt)
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = s.LoadFile(empty, password)
	require.Error(t, err)
	assert.Equal(t, "file is empty", err.Error())

	junk := filepath.Join(dir, "junk"+FileExt)
	require.NoError(t, os.WriteFile(junk, []byte{0x80}, 0o600))
	_, err = s.LoadFile(junk, password)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestPublicKeysQR(t *testing.T) {
	keys := testutil.NewAccountKeys(t)

	uri := PublicKeysURI(keys)
	assert.Contains(t, uri, keys.SpendPublicKey.String())
	assert.Contains(t, uri, keys.ViewPublicKey.String())
	assert.False(t, strings.Contains(uri, hex.EncodeToString(keys.SpendSecretKey[:])))
	assert.False(t, strings.Contains(uri, hex.EncodeToString(keys.ViewSecretKey[:])))

	png, err := PublicKeysQR(keys)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}
