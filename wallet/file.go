package wallet

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlexZinkM/legacy-wallet/internal/history"
)

// FileExt is the extension of wallet files created by this package
const FileExt = ".wallet"

const filePerm = 0o600

// CreateFile writes a new wallet file at path. It refuses to overwrite a
// non-empty file.
// password must be []byte for security (caller should zero it after use)
func (s *Serializer) CreateFile(path string, acc Account, saveDetailed bool, txs *history.Cache, cache []byte, password []byte) error {
	if !strings.HasSuffix(path, FileExt) {
		return fmt.Errorf("file must have %s extension", FileExt)
	}

	fileInfo, err := os.Stat(path)
	if err == nil && fileInfo.Size() > 0 {
		return &FileExistsError{Path: path}
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	return s.writeFile(path, acc, saveDetailed, txs, cache, password)
}

// SaveFile writes the wallet to path, replacing any existing file. The
// data goes to a temporary file in the same directory that is renamed
// over path, so path never holds a partially written wallet.
// password must be []byte for security (caller should zero it after use)
func (s *Serializer) SaveFile(path string, acc Account, saveDetailed bool, txs *history.Cache, cache []byte, password []byte) error {
	return s.writeFile(path, acc, saveDetailed, txs, cache, password)
}

func (s *Serializer) writeFile(path string, acc Account, saveDetailed bool, txs *history.Cache, cache []byte, password []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	buf := bufio.NewWriter(tmp)
	if err = s.Serialize(buf, acc, saveDetailed, txs, cache, password); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace wallet file: %w", err)
	}
	return nil
}

// LoadFile reads and decrypts the wallet file at path.
// password must be []byte for security (caller should zero it after use)
func (s *Serializer) LoadFile(path string, password []byte) (*Result, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return s.Deserialize(bufio.NewReader(f), password)
}
