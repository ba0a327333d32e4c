package index

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/session/xe_node", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"address": "xe_node",
			"online": true,
			"lastActive": 1673534284000,
			"node": {"address": "xe_node", "stake": "9d51f5129e9188ba9622163f06b34e51"}
		}`))
	})
	mux.HandleFunc("/stake/9d51f5129e9188ba9622163f06b34e51", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "9d51f5129e9188ba9622163f06b34e51",
			"device": "xe_node",
			"wallet": "xe_wallet",
			"amount": 2500000000
		}`))
	})
	mux.HandleFunc("/device/xe_node/stake", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stake": "9d51f5129e9188ba9622163f06b34e51"}`))
	})
	mux.HandleFunc("/transactions/xe_wallet", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [
				{"sender": "xe_payer", "recipient": "xe_wallet", "amount": 5000000,
				 "timestamp": 1673534284000, "data": {"memo": "Node Earnings"}}
			],
			"metadata": {"count": 1, "page": 1, "limit": 100, "totalCount": 1}
		}`))
	})
	mux.HandleFunc("/exchangerate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date": "2023-01-12", "rate": 0.0831, "ref": "usd"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClientQueries(t *testing.T) {
	server := newFixtureServer(t)
	client := NewClient()

	sess, err := client.Session(server.URL, "xe_node")
	require.NoError(t, err)
	require.True(t, sess.Online)
	require.Equal(t, "9d51f5129e9188ba9622163f06b34e51", sess.Node.Stake)
	require.Equal(t, int64(1673534284000), sess.LastActive)

	stake, err := client.Stake(server.URL, "9d51f5129e9188ba9622163f06b34e51")
	require.NoError(t, err)
	require.Equal(t, "xe_wallet", stake.Wallet)

	ds, err := client.DeviceStake(server.URL, "xe_node")
	require.NoError(t, err)
	require.Equal(t, "9d51f5129e9188ba9622163f06b34e51", ds.Stake)

	page, err := client.Transactions(server.URL, "xe_wallet")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, int64(5000000), page.Results[0].Amount)
	require.Equal(t, "Node Earnings", page.Results[0].Data.Memo)

	rate, err := client.CurrentExchangeRate(server.URL)
	require.NoError(t, err)
	require.Equal(t, 0.0831, rate.Rate)
}

func TestClientErrorsOnUnknownAddress(t *testing.T) {
	server := newFixtureServer(t)
	client := NewClient()

	_, err := client.Session(server.URL, "xe_missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 404")
}

func TestClientErrorsOnMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	_, err := NewClient().Session(server.URL, "xe_node")
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed response")
}
