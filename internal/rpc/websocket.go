package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WSClient implements Client over a persistent WebSocket connection, for
// endpoints exposed as ws:// or wss://. Requests and batches are written as
// single text frames; the campaign issues one operation at a time, the mutex
// only guards against accidental interleaving.
type WSClient struct {
	conn    *websocket.Conn
	timeout time.Duration
	logger  logrus.FieldLogger
	mu      sync.Mutex
}

// DialWS connects to a WebSocket JSON-RPC endpoint.
func DialWS(cfg ClientConfig) (*WSClient, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	dialer := websocket.Dialer{HandshakeTimeout: cfg.Timeout}
	conn, resp, err := dialer.Dial(cfg.URL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial %s: %w (HTTP %d %s)", cfg.URL, err, resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, fmt.Errorf("websocket dial %s: %w", cfg.URL, err)
	}

	logger.WithField("url", cfg.URL).Debug("WebSocket RPC connection established")

	return &WSClient{
		conn:    conn,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Call makes a single JSON-RPC call over the socket.
func (c *WSClient) Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	req := JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.roundTrip(ctx, body)
	if err != nil {
		return nil, err
	}

	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, &RPCError{Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}
	return rpcResp.Result, nil
}

// BatchCall sends a JSON-RPC batch array as one frame and reads one frame
// back, pairing responses to requests by id like the HTTP transport.
func (c *WSClient) BatchCall(ctx context.Context, calls []BatchRequest) ([]BatchResponse, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	body, err := marshalBatch(calls)
	if err != nil {
		return nil, err
	}

	respBody, err := c.roundTrip(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("batch dispatch failed: %w", err)
	}

	return unmarshalBatch(respBody, len(calls))
}

// ChainID fetches the chain id via eth_chainId.
func (c *WSClient) ChainID(ctx context.Context) (*big.Int, error) {
	return chainID(ctx, c)
}

// TransactionCount fetches the latest-block nonce for an address.
func (c *WSClient) TransactionCount(ctx context.Context, address string) (uint64, error) {
	return transactionCount(ctx, c, address)
}

// Close closes the socket.
func (c *WSClient) Close() error {
	return c.conn.Close()
}

func (c *WSClient) roundTrip(ctx context.Context, body []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, body); err != nil {
		return nil, fmt.Errorf("websocket write: %w", err)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}
	_, respBody, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("websocket read: %w", err)
	}
	return respBody, nil
}
