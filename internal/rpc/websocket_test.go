package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsRPCServer upgrades connections and answers JSON-RPC frames with the same
// semantics as the HTTP test handler.
func wsRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var batch []JSONRPCRequest
			if err := json.Unmarshal(msg, &batch); err == nil {
				resps := make([]JSONRPCResponse, 0, len(batch))
				for i := len(batch) - 1; i >= 0; i-- { // reverse order on purpose
					resps = append(resps, answerWS(batch[i]))
				}
				out, _ := json.Marshal(resps)
				if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
					return
				}
				continue
			}

			var single JSONRPCRequest
			if err := json.Unmarshal(msg, &single); err != nil {
				return
			}
			out, _ := json.Marshal(answerWS(single))
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	}))
}

func answerWS(req JSONRPCRequest) JSONRPCResponse {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "eth_chainId":
		resp.Result = json.RawMessage(`"0x1"`)
	case "eth_getTransactionCount":
		resp.Result = json.RawMessage(`"0x7"`)
	case "eth_sendRawTransaction":
		raw, _ := req.Params[0].(string)
		if strings.HasSuffix(raw, "ff") {
			resp.Error = &JSONRPCError{Code: -32000, Message: "already known"}
		} else {
			resp.Result = json.RawMessage(`"0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"`)
		}
	default:
		resp.Error = &JSONRPCError{Code: -32601, Message: "method not found"}
	}
	return resp
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSClientCall(t *testing.T) {
	srv := wsRPCServer(t)
	defer srv.Close()

	client, err := DialWS(DefaultClientConfig(wsURL(srv)))
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()

	chainID, err := client.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), chainID.Int64())

	nonce, err := client.TransactionCount(ctx, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), nonce)
}

func TestWSClientBatchCall(t *testing.T) {
	srv := wsRPCServer(t)
	defer srv.Close()

	client, err := DialWS(DefaultClientConfig(wsURL(srv)))
	require.NoError(t, err)
	defer client.Close()

	calls := []BatchRequest{
		{Method: "eth_sendRawTransaction", Params: []interface{}{"0x02aa"}},
		{Method: "eth_sendRawTransaction", Params: []interface{}{"0x02ff"}},
		{Method: "eth_sendRawTransaction", Params: []interface{}{"0x02bb"}},
	}

	resps, err := client.BatchCall(context.Background(), calls)
	require.NoError(t, err)
	require.Len(t, resps, 3)

	assert.NoError(t, resps[0].Error)
	assert.Error(t, resps[1].Error)
	assert.NoError(t, resps[2].Error)
}

func TestNewSelectsWebSocket(t *testing.T) {
	srv := wsRPCServer(t)
	defer srv.Close()

	client, err := New(DefaultClientConfig(wsURL(srv)))
	require.NoError(t, err)
	defer client.Close()

	_, ok := client.(*WSClient)
	assert.True(t, ok)
}

func TestDialWSRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := DialWS(DefaultClientConfig(wsURL(srv)))
	assert.Error(t, err)
}
