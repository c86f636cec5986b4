package wallet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

// Errors.
var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrInvalidKey     = errors.New("invalid private key")
	ErrNotConnected   = errors.New("no wallet connected")
)

// Wallet holds metadata for one signing wallet. The private key itself
// lives in the keystore; only the KeyRef is persisted here.
type Wallet struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	KeyRef    string `json:"key_ref"`
	Connected bool   `json:"connected"`
	CreatedAt string `json:"created_at"`
}

// Store persists the wallet list.
type Store interface {
	Load() ([]*Wallet, error)
	Save([]*Wallet) error
}

// Manager handles wallet import, connect, and disconnect. At most one
// wallet is connected at a time; a connected wallet is what makes write
// actions possible.
type Manager struct {
	store   Store
	ks      *Keystore
	wallets []*Wallet
	loaded  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets a custom store (in-memory in tests).
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithKeystore sets a custom keystore.
func WithKeystore(ks *Keystore) Option {
	return func(m *Manager) { m.ks = ks }
}

// NewManager creates a wallet manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{store: &memStore{}}
	for _, opt := range opts {
		opt(m)
	}
	if m.ks == nil {
		m.ks = DefaultKeystore()
	}
	return m
}

// Import derives the EVM address from a hex private key, stores the key in
// the keystore, and registers the wallet.
func (m *Manager) Import(name, hexKey string) (*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	if m.find(name) != nil {
		return nil, ErrWalletExists
	}

	privKey, err := crypto.HexToECDSA(stripHexPrefix(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	addr := crypto.PubkeyToAddress(privKey.PublicKey).Hex()

	ref, err := m.ks.Store(name, hexKey)
	if err != nil {
		return nil, fmt.Errorf("storing key: %w", err)
	}

	w := &Wallet{
		Name:      name,
		Address:   addr,
		KeyRef:    ref,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	m.wallets = append(m.wallets, w)
	return w, m.persist()
}

// Connect makes the named wallet the active one. Any previously connected
// wallet is disconnected.
func (m *Manager) Connect(name string) (*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	target := m.find(name)
	if target == nil {
		return nil, ErrWalletNotFound
	}
	for _, w := range m.wallets {
		w.Connected = w == target
	}
	return target, m.persist()
}

// Disconnect clears the active wallet.
func (m *Manager) Disconnect() error {
	if err := m.load(); err != nil {
		return err
	}
	for _, w := range m.wallets {
		w.Connected = false
	}
	return m.persist()
}

// Connected returns the active wallet, or ErrNotConnected.
func (m *Manager) Connected() (*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	for _, w := range m.wallets {
		if w.Connected {
			return w, nil
		}
	}
	return nil, ErrNotConnected
}

// Get returns a wallet by name.
func (m *Manager) Get(name string) (*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	if w := m.find(name); w != nil {
		return w, nil
	}
	return nil, ErrWalletNotFound
}

// List returns all registered wallets.
func (m *Manager) List() ([]*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	return m.wallets, nil
}

// Remove deletes a wallet and its stored key.
func (m *Manager) Remove(name string) error {
	if err := m.load(); err != nil {
		return err
	}
	for i, w := range m.wallets {
		if w.Name == name {
			_ = m.ks.Delete(w.KeyRef)
			m.wallets = append(m.wallets[:i], m.wallets[i+1:]...)
			return m.persist()
		}
	}
	return ErrWalletNotFound
}

// Signer returns a transaction signer for the connected wallet.
func (m *Manager) Signer() (*Signer, error) {
	w, err := m.Connected()
	if err != nil {
		return nil, err
	}
	return NewSigner(w, m.ks), nil
}

func (m *Manager) find(name string) *Wallet {
	for _, w := range m.wallets {
		if w.Name == name {
			return w
		}
	}
	return nil
}

func (m *Manager) load() error {
	if m.loaded {
		return nil
	}
	ws, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("loading wallets: %w", err)
	}
	m.wallets = ws
	m.loaded = true
	return nil
}

func (m *Manager) persist() error {
	return m.store.Save(m.wallets)
}

// memStore keeps wallets in memory. Used in tests.
type memStore struct {
	wallets []*Wallet
}

func (s *memStore) Load() ([]*Wallet, error) { return s.wallets, nil }
func (s *memStore) Save(ws []*Wallet) error  { s.wallets = ws; return nil }

func stripHexPrefix(s string) string {
	return strings.TrimPrefix(s, "0x")
}
