package account

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gateway-fm/evmink/internal/config"
)

// Anvil/Hardhat default account 0.
const (
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
)

func TestNewAccountFromHex(t *testing.T) {
	acc, err := NewAccountFromHex(testKey)
	require.NoError(t, err)
	assert.Equal(t, testAddress, acc.AddressHex())

	// 0x prefix is accepted.
	acc2, err := NewAccountFromHex("0x" + testKey)
	require.NoError(t, err)
	assert.Equal(t, acc.Address, acc2.Address)

	_, err = NewAccountFromHex("")
	assert.Error(t, err)
	_, err = NewAccountFromHex("zzzz")
	assert.Error(t, err)
}

func TestAddressHexIsCanonicalLowercase(t *testing.T) {
	acc, err := NewAccountFromHex(testKey)
	require.NoError(t, err)

	hex := acc.AddressHex()
	assert.Len(t, hex, 42)
	assert.Equal(t, "0x", hex[:2])
	for _, r := range hex[2:] {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'), "char %c", r)
	}
}

func baseConfig() *config.Config {
	return &config.Config{
		RPCURL:       "https://rpc.example.org",
		PrivateKey:   testKey,
		MaxFeePerGas: "30",
		Data:         `{"p":"erc-20","op":"mint"}`,
		Count:        10,
		BatchSize:    config.DefaultBatchSize,
	}
}

func TestExpandWalletsWithoutFile(t *testing.T) {
	cfg := baseConfig()
	wallets, err := ExpandWallets(cfg)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Same(t, cfg, wallets[0])
}

func TestExpandWalletsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	content := "0xabc----label----" + testKey + "\n" +
		"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d\n" +
		"addr----  5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := baseConfig()
	cfg.WalletsFile = path

	wallets, err := ExpandWallets(cfg)
	require.NoError(t, err)
	require.Len(t, wallets, 3)

	// Last ----field wins, whitespace trimmed, base config carried over.
	assert.Equal(t, testKey, wallets[0].PrivateKey)
	assert.Equal(t, "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d", wallets[1].PrivateKey)
	assert.Equal(t, "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a", wallets[2].PrivateKey)
	for _, w := range wallets {
		assert.Equal(t, cfg.RPCURL, w.RPCURL)
		assert.Equal(t, cfg.Data, w.Data)
	}
}

func TestExpandWalletsKeepsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(testKey+"\n\n"+testKey+"\n"), 0o600))

	cfg := baseConfig()
	cfg.WalletsFile = path

	// Blank lines are not filtered; they surface as per-account key errors later.
	wallets, err := ExpandWallets(cfg)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Empty(t, wallets[1].PrivateKey)
	_, err = NewAccountFromHex(wallets[1].PrivateKey)
	assert.Error(t, err)
}

func TestExpandWalletsMissingFile(t *testing.T) {
	cfg := baseConfig()
	cfg.WalletsFile = filepath.Join(t.TempDir(), "nope.txt")

	_, err := ExpandWallets(cfg)
	assert.Error(t, err)
}
