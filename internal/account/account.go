// Package account manages the funded accounts driving a campaign.
package account

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gateway-fm/evmink/internal/config"
)

// Account holds a sender's key material and derived address.
type Account struct {
	PrivateKey *ecdsa.PrivateKey
	Address    common.Address
}

// NewAccountFromHex creates an account from a hex-encoded private key.
// A 0x prefix is accepted and stripped.
func NewAccountFromHex(hexKey string) (*Account, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Account{
		PrivateKey: privateKey,
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// AddressHex returns the canonical lowercase 0x-prefixed sender address, the
// form substituted for [address] in payload templates.
func (a *Account) AddressHex() string {
	return strings.ToLower(a.Address.Hex())
}

// walletDelimiter separates the optional label fields from the private key in
// a wallets file line. The key is always the last field.
const walletDelimiter = "----"

// ExpandWallets returns one config clone per account to process.
//
// When the config names a wallets file, each of its lines contributes one
// clone whose private key is the trimmed last -----delimited field; other
// fields (address, label) are ignored. Lines with empty or malformed keys are
// not pre-validated here; they fail when the account is parsed, aborting only
// that account's run. Without a wallets file the base config is the single
// entry.
func ExpandWallets(cfg *config.Config) ([]*config.Config, error) {
	if cfg.WalletsFile == "" {
		return []*config.Config{cfg}, nil
	}

	raw, err := os.ReadFile(cfg.WalletsFile)
	if err != nil {
		return nil, fmt.Errorf("read wallets file %s: %w", cfg.WalletsFile, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	// A trailing newline produces one empty trailing element, not a wallet.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	wallets := make([]*config.Config, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, walletDelimiter)
		key := strings.TrimSpace(parts[len(parts)-1])
		wallets = append(wallets, cfg.WithPrivateKey(key))
	}
	return wallets, nil
}
