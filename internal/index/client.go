package index

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client queries the XE index service. It is a thin read-only HTTP client;
// callers pick the base URL per call so a config change takes effect on the
// next query. The per-request timeout bounds a single poll tick without
// changing the retry cadence.
type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Session fetches the current session status for a node address.
func (c *Client) Session(baseURL, nodeAddress string) (*Session, error) {
	var sess Session
	if err := c.getJSON(fmt.Sprintf("%s/session/%s", baseURL, nodeAddress), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Stake fetches a stake record by stake id.
func (c *Client) Stake(baseURL, stakeID string) (*Stake, error) {
	var st Stake
	if err := c.getJSON(fmt.Sprintf("%s/stake/%s", baseURL, stakeID), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// DeviceStake resolves the stake id currently assigned to a device.
func (c *Client) DeviceStake(baseURL, nodeAddress string) (*DeviceStake, error) {
	var ds DeviceStake
	if err := c.getJSON(fmt.Sprintf("%s/device/%s/stake", baseURL, nodeAddress), &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Transactions fetches the transaction history of a wallet address.
func (c *Client) Transactions(baseURL, walletAddress string) (*TransactionPage, error) {
	var page TransactionPage
	if err := c.getJSON(fmt.Sprintf("%s/transactions/%s", baseURL, walletAddress), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CurrentExchangeRate fetches the current fiat rate per XE token.
func (c *Client) CurrentExchangeRate(baseURL string) (*ExchangeRate, error) {
	var rate ExchangeRate
	if err := c.getJSON(fmt.Sprintf("%s/exchangerate", baseURL), &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

func (c *Client) getJSON(url string, out interface{}) error {
	resp, err := c.http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("index: GET %s returned status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("index: GET %s returned malformed response: %w", url, err)
	}
	return nil
}
