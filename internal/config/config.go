// Package config handles campaign configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gateway-fm/evmink/internal/units"
)

// Config holds one minting campaign's configuration. All inputs come from the
// process environment; see Load.
type Config struct {
	RPCURL     string
	PrivateKey string
	ToAddress  string // empty means "send to self"

	MaxFeePerGas         string // decimal gwei
	MaxPriorityFeePerGas string // decimal gwei; empty selects legacy transactions
	GasLimit             uint64
	Value                string // decimal ether

	Prefix string
	Data   string

	Count     uint64
	BatchSize uint64
	Interval  float64 // seconds between batches, fractional allowed

	WalletsFile string
	MetricsAddr string // optional Prometheus listen address
}

// Defaults
const (
	DefaultGasLimit  = 50000
	DefaultValue     = "0"
	DefaultPrefix    = "data:,"
	DefaultBatchSize = 100
	DefaultInterval  = 0
)

// Load reads configuration from the process environment. Variable names are
// matched case-insensitively, so RPC_URL and rpc_url are equivalent.
func Load() (*Config, error) {
	return loadFrom(newEnviron(os.Environ()))
}

func loadFrom(env environ) (*Config, error) {
	cfg := &Config{
		RPCURL:               env.get("rpc_url"),
		PrivateKey:           env.get("private_key"),
		ToAddress:            env.get("to_address"),
		MaxFeePerGas:         env.get("max_fee_per_gas"),
		MaxPriorityFeePerGas: env.get("max_priority_fee_per_gas"),
		GasLimit:             DefaultGasLimit,
		Value:                DefaultValue,
		Prefix:               DefaultPrefix,
		Data:                 env.get("data"),
		BatchSize:            DefaultBatchSize,
		Interval:             DefaultInterval,
		WalletsFile:          env.get("wallets_file"),
		MetricsAddr:          env.get("metrics_addr"),
	}

	if v := env.get("gas_limit"); v != "" {
		gasLimit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid gas_limit %q: %w", v, err)
		}
		cfg.GasLimit = gasLimit
	}
	if v := env.get("value"); v != "" {
		cfg.Value = v
	}
	if v := env.get("prefix"); v != "" {
		cfg.Prefix = v
	}
	if v := env.get("count"); v != "" {
		count, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid count %q: %w", v, err)
		}
		cfg.Count = count
	}
	if v := env.get("batch_size"); v != "" {
		batchSize, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid batch_size %q: %w", v, err)
		}
		cfg.BatchSize = batchSize
	}
	if v := env.get("interval"); v != "" {
		interval, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid interval %q: %w", v, err)
		}
		cfg.Interval = interval
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration before any network activity.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	u, err := url.Parse(c.RPCURL)
	if err != nil {
		return fmt.Errorf("invalid rpc_url %q: %w", c.RPCURL, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("rpc_url scheme %q not supported (want http, https, ws or wss)", u.Scheme)
	}

	if c.PrivateKey == "" && c.WalletsFile == "" {
		return fmt.Errorf("private_key is required unless wallets_file is set")
	}
	if c.Data == "" {
		return fmt.Errorf("data is required and must not be empty")
	}
	if c.MaxFeePerGas == "" {
		return fmt.Errorf("max_fee_per_gas is required")
	}
	if _, err := units.ParseGwei(c.MaxFeePerGas); err != nil {
		return fmt.Errorf("invalid max_fee_per_gas: %w", err)
	}
	if c.MaxPriorityFeePerGas != "" {
		if _, err := units.ParseGwei(c.MaxPriorityFeePerGas); err != nil {
			return fmt.Errorf("invalid max_priority_fee_per_gas: %w", err)
		}
	}
	if _, err := units.ParseEther(c.Value); err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	if c.Count == 0 {
		return fmt.Errorf("count must be positive")
	}
	if c.BatchSize == 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}
	if c.GasLimit == 0 {
		return fmt.Errorf("gas_limit must be positive")
	}
	return nil
}

// WithPrivateKey returns a copy of the config bound to a different key.
// Used when iterating a wallets file.
func (c *Config) WithPrivateKey(key string) *Config {
	clone := *c
	clone.PrivateKey = key
	return &clone
}

// IsWebSocket reports whether the endpoint uses a WebSocket scheme.
func (c *Config) IsWebSocket() bool {
	return strings.HasPrefix(c.RPCURL, "ws://") || strings.HasPrefix(c.RPCURL, "wss://")
}

// environ is a case-insensitive view of the process environment.
type environ map[string]string

func newEnviron(pairs []string) environ {
	env := make(environ, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(key)
		// First occurrence wins, matching os.Getenv on duplicate names.
		if _, exists := env[key]; !exists {
			env[key] = value
		}
	}
	return env
}

func (e environ) get(key string) string {
	return e[strings.ToLower(key)]
}
