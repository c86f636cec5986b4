package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultChainID  = 31337 // local Anvil node
	defaultLanguage = "en"

	configFile  = "config.json"
	walletsFile = "wallets.json"
)

// Environment overrides, resolved once at load time.
const (
	EnvContractAddress = "PLAYGROUND_CONTRACT_ADDRESS"
	EnvChainID         = "PLAYGROUND_CHAIN_ID"
	EnvLanguage        = "PLAYGROUND_LANG"
)

// Config holds the playground client configuration. It is resolved once
// at startup and treated as read-only by the core logic; only explicit
// `config set` commands mutate and re-save it.
type Config struct {
	ContractAddress string `json:"contract_address"`
	ChainID         int64  `json:"chain_id"`
	Language        string `json:"language"`

	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.playground. Environment variables override persisted values.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".playground")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// first run, defaults apply
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		cfg.configDir = dir
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletStorePath returns the path of the persisted wallet list.
func (c *Config) WalletStorePath() string {
	return filepath.Join(c.configDir, walletsFile)
}

func defaults(dir string) *Config {
	return &Config{
		ChainID:   defaultChainID,
		Language:  defaultLanguage,
		configDir: dir,
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvContractAddress); v != "" {
		cfg.ContractAddress = v
	}
	if v := os.Getenv(EnvChainID); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ChainID = id
		}
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		cfg.Language = v
	}
}
