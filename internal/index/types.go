package index

// Response shapes of the XE index service. All timestamps are milliseconds
// since the epoch.

// SessionNode is the node block embedded in a session response.
type SessionNode struct {
	Address string `json:"address"`
	Stake   string `json:"stake"`
	Gateway string `json:"gateway"`
}

// Session is the network's current view of a device.
type Session struct {
	Address    string      `json:"address"`
	Online     bool        `json:"online"`
	LastActive int64       `json:"lastActive"`
	Node       SessionNode `json:"node"`
}

// Stake is a stake record resolved by stake id.
type Stake struct {
	ID      string `json:"id"`
	Hash    string `json:"hash"`
	Type    string `json:"type"`
	Device  string `json:"device"`
	Wallet  string `json:"wallet"`
	Amount  int64  `json:"amount"`
	Created int64  `json:"created"`
}

// DeviceStake maps a device address to its stake id.
type DeviceStake struct {
	Stake string `json:"stake"`
}

// TransactionData carries the optional transaction metadata.
type TransactionData struct {
	Memo string `json:"memo"`
}

// Transaction is one wallet transaction. Amounts are in the smallest-unit
// denomination (1 XE = 1_000_000 units). The index does not guarantee any
// particular ordering of transactions within a page.
type Transaction struct {
	Hash      string          `json:"hash"`
	Sender    string          `json:"sender"`
	Recipient string          `json:"recipient"`
	Amount    int64           `json:"amount"`
	Nonce     int64           `json:"nonce"`
	Timestamp int64           `json:"timestamp"`
	Data      TransactionData `json:"data"`
}

// TransactionPage is one page of a wallet's transaction history.
type TransactionPage struct {
	Results  []Transaction `json:"results"`
	Metadata PageMetadata  `json:"metadata"`
}

type PageMetadata struct {
	Count      int `json:"count"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
}

// ExchangeRate is the current fiat rate per whole XE token.
type ExchangeRate struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
	Ref  string  `json:"ref"`
}
