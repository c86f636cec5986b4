package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists wallets as JSON in the config directory.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type walletsFile struct {
	Wallets []*Wallet `json:"wallets"`
}

// Load reads the wallet list. A missing file yields an empty list.
func (s *FileStore) Load() ([]*Wallet, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var wf walletsFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, err
	}
	return wf.Wallets, nil
}

// Save writes the wallet list with restrictive permissions.
func (s *FileStore) Save(ws []*Wallet) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(walletsFile{Wallets: ws}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
