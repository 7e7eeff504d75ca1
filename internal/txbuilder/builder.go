// Package txbuilder constructs and signs the campaign's inscription transactions.
package txbuilder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/gateway-fm/evmink/internal/units"
)

// GasPrice holds the per-campaign fee settings, converted to wei once at
// account initialization.
type GasPrice struct {
	// EIP1559 selects typed dynamic-fee transactions; when false the max fee
	// is used as a legacy gas price.
	EIP1559              bool
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Value                *big.Int
}

// NewGasPrice converts the configured decimal amounts into wei. A non-empty
// priority fee selects EIP-1559 mode.
func NewGasPrice(maxFeeGwei, priorityFeeGwei, valueEther string) (*GasPrice, error) {
	maxFee, err := units.ParseGwei(maxFeeGwei)
	if err != nil {
		return nil, err
	}

	priorityFee := new(big.Int)
	eip1559 := priorityFeeGwei != ""
	if eip1559 {
		priorityFee, err = units.ParseGwei(priorityFeeGwei)
		if err != nil {
			return nil, err
		}
	}

	value, err := units.ParseEther(valueEther)
	if err != nil {
		return nil, err
	}

	return &GasPrice{
		EIP1559:              eip1559,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: priorityFee,
		Value:                value,
	}, nil
}

// NewInscriptionTx creates either a DynamicFeeTx or a LegacyTx carrying the
// payload bytes, depending on the gas price mode.
func NewInscriptionTx(chainID *big.Int, nonce uint64, to common.Address, gasLimit uint64, gasPrice *GasPrice, data []byte) *types.Transaction {
	if !gasPrice.EIP1559 {
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice.MaxFeePerGas,
			Gas:      gasLimit,
			To:       &to,
			Value:    gasPrice.Value,
			Data:     data,
		})
	}
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:    chainID,
		Nonce:      nonce,
		GasTipCap:  gasPrice.MaxPriorityFeePerGas,
		GasFeeCap:  gasPrice.MaxFeePerGas,
		Gas:        gasLimit,
		To:         &to,
		Value:      gasPrice.Value,
		Data:       data,
		AccessList: types.AccessList{},
	})
}
