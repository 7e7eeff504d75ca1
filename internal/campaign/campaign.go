// Package campaign drives the minting pipeline: one sequential run per
// account, each split into signed JSON-RPC batches.
package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/gateway-fm/evmink/internal/account"
	"github.com/gateway-fm/evmink/internal/config"
	"github.com/gateway-fm/evmink/internal/logging"
	"github.com/gateway-fm/evmink/internal/metrics"
	"github.com/gateway-fm/evmink/internal/rpc"
	"github.com/gateway-fm/evmink/internal/template"
	"github.com/gateway-fm/evmink/internal/txbuilder"
)

// Runner executes campaigns against one RPC endpoint. Accounts are processed
// strictly sequentially with a single outstanding network operation at a time.
type Runner struct {
	client  rpc.Client
	metrics *metrics.Metrics
	logger  logrus.FieldLogger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewRunner creates a campaign runner.
func NewRunner(client rpc.Client, m *metrics.Metrics, logger logrus.FieldLogger) *Runner {
	return &Runner{
		client:  client,
		metrics: m,
		logger:  logger,
		sleep:   time.Sleep,
	}
}

// Run executes the campaign for every configured account. A failing account
// aborts only its own run; Run returns an error if any account failed.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) error {
	chainID, err := r.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("fetch chain id: %w", err)
	}

	gasPrice, err := txbuilder.NewGasPrice(cfg.MaxFeePerGas, cfg.MaxPriorityFeePerGas, cfg.Value)
	if err != nil {
		return err
	}

	wallets, err := account.ExpandWallets(cfg)
	if err != nil {
		return err
	}
	r.logger.WithField("wallets", len(wallets)).Info("starting campaign")

	failed := 0
	for _, wcfg := range wallets {
		if err := r.runAccount(ctx, chainID, gasPrice, wcfg); err != nil {
			r.logger.WithError(err).Error("account campaign failed")
			r.metrics.RecordAccountDone(true)
			failed++
		} else {
			r.metrics.RecordAccountDone(false)
		}
		fmt.Println()
		fmt.Println()
		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d accounts failed", failed, len(wallets))
	}
	return nil
}

// runAccount seeds one account's state and dispatches its batches.
func (r *Runner) runAccount(ctx context.Context, chainID *big.Int, gasPrice *txbuilder.GasPrice, cfg *config.Config) error {
	acc, err := account.NewAccountFromHex(cfg.PrivateKey)
	if err != nil {
		return err
	}
	address := acc.AddressHex()

	nonce, err := r.client.TransactionCount(ctx, address)
	if err != nil {
		return fmt.Errorf("fetch nonce for %s: %w", address, err)
	}

	id, rangeLen := template.ParseID(cfg.Data)
	count := min(cfg.Count, rangeLen)

	to, err := resolveRecipient(cfg.ToAddress, acc.Address)
	if err != nil {
		return err
	}

	signer := txbuilder.NewSigner(chainID, acc.PrivateKey)

	preflight := template.Payload(cfg.Data, cfg.Prefix, address, id)
	log := r.logger.WithField("wallet", address)
	log.WithField("chain_id", chainID).Info("chain id")
	log.WithField("to", strings.ToLower(to.Hex())).Info("inscription recipient")
	log.WithField("nonce", nonce).Info("starting nonce")
	if text, err := template.DecodeText(preflight); err == nil {
		log.WithField("text", text).Info("mint data")
	}
	log.WithField("hex", preflight).Info("mint payload")
	log.WithField("count", count).Info("total mints")

	build := func() (string, error) {
		payload := template.Payload(cfg.Data, cfg.Prefix, address, id)
		data, err := hexutil.Decode(payload)
		if err != nil {
			return "", fmt.Errorf("decode payload: %w", err)
		}
		if id != nil {
			id.Next()
		}

		tx := txbuilder.NewInscriptionTx(chainID, nonce, to, cfg.GasLimit, gasPrice, data)
		raw, err := signer.SignRawHex(tx)
		if err != nil {
			return "", err
		}
		nonce++
		return raw, nil
	}

	interval := time.Duration(cfg.Interval * float64(time.Second))
	return r.dispatch(ctx, count, cfg.BatchSize, interval, build)
}

// dispatch partitions count into batch groups, builds and submits each group
// as one JSON-RPC batch, and accounts for every response in request order.
//
// Per-entry RPC errors are warnings: the nonce is already advanced client-side
// and reusing a rejected nonce risks a double-submission race, so the campaign
// continues and missing sequence numbers are left to a re-run. A transport
// failure aborts the account's remaining batches.
func (r *Runner) dispatch(ctx context.Context, count, batchSize uint64, interval time.Duration, build func() (string, error)) error {
	batchCount := (count + batchSize - 1) / batchSize

	for i := uint64(0); i < batchCount; i++ {
		start := i * batchSize
		end := min((i+1)*batchSize, count)
		currentBatchSize := end - start

		logging.RoundBanner(r.logger, fmt.Sprintf("Round %d of %d, batch size %d", i+1, batchCount, currentBatchSize))

		calls := make([]rpc.BatchRequest, 0, currentBatchSize)
		for j := uint64(0); j < currentBatchSize; j++ {
			raw, err := build()
			if err != nil {
				return err
			}
			calls = append(calls, rpc.BatchRequest{
				Method: "eth_sendRawTransaction",
				Params: []interface{}{raw},
			})
		}

		resps, err := r.client.BatchCall(ctx, calls)
		if err != nil {
			return err
		}
		r.metrics.RecordBatchDispatched()

		for k, resp := range resps {
			seq := start + uint64(k) + 1
			if resp.Error != nil {
				r.logger.WithField("tx", seq).WithError(resp.Error).Error("transaction send failed")
				r.metrics.RecordTxRejected()
				continue
			}

			var hash string
			if err := json.Unmarshal(resp.Result, &hash); err != nil {
				r.logger.WithField("tx", seq).WithError(err).Error("malformed transaction hash")
				r.metrics.RecordTxRejected()
				continue
			}
			r.logger.WithFields(logrus.Fields{"tx": seq, "hash": hash}).Info("transaction sent")
			r.metrics.RecordTxAccepted()
		}

		// No point sleeping after the final group.
		if i+1 < batchCount && interval > 0 {
			r.sleep(interval)
		}
	}

	return nil
}

// resolveRecipient parses the configured destination, defaulting to the
// sender when absent or empty.
func resolveRecipient(to string, sender common.Address) (common.Address, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return sender, nil
	}
	if !common.IsHexAddress(to) {
		return common.Address{}, fmt.Errorf("invalid to_address %q", to)
	}
	return common.HexToAddress(to), nil
}
