package models

// Payout is one accepted payout transaction, recorded when the earnings
// scanner reports it. Timestamp is the transaction issuance time in
// milliseconds since the epoch, as delivered by the index service.
type Payout struct {
	ID            uint   `gorm:"primaryKey"`
	WalletAddress string `gorm:"index"`
	Kind          string `gorm:"index"` // "node_earning" or "lottery_winning"
	Sender        string
	Memo          string
	Amount        int64 // smallest-unit XE
	FiatValue     float64
	Timestamp     int64 `gorm:"index"`
}
