package txbuilder

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer signs transactions locally for one chain and one private key.
// Legacy transactions get EIP-155 replay protection; dynamic-fee transactions
// use the typed (0x02 envelope) signing rules.
type Signer struct {
	chainID *big.Int
	signer  types.Signer
	key     *ecdsa.PrivateKey
}

// NewSigner creates a signer bound to the given chain id and key.
func NewSigner(chainID *big.Int, key *ecdsa.PrivateKey) *Signer {
	return &Signer{
		chainID: chainID,
		signer:  types.LatestSignerForChainID(chainID),
		key:     key,
	}
}

// ChainID returns the chain id transactions are bound to.
func (s *Signer) ChainID() *big.Int {
	return s.chainID
}

// SignRawHex signs the transaction and returns the wire form expected by
// eth_sendRawTransaction: 0x-prefixed lowercase hex of the RLP-encoded signed
// transaction (typed envelope for dynamic-fee transactions).
func (s *Signer) SignRawHex(tx *types.Transaction) (string, error) {
	signed, err := types.SignTx(tx, s.signer, s.key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encode signed transaction: %w", err)
	}
	return hexutil.Encode(raw), nil
}
