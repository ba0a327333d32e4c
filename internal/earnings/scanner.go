package earnings

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
	"github.com/Edge-Works/EdgeNodeObserver/internal/index"
	"github.com/Edge-Works/EdgeNodeObserver/internal/models"
	"github.com/Edge-Works/EdgeNodeObserver/internal/notify"
)

// ConfigStore is the slice of the persisted configuration the scanner
// needs. The watermark is re-read per transaction, never cached for a
// whole scan, so concurrent external advances are honored.
type ConfigStore interface {
	WalletAddress() (string, bool)
	LastNodePayment() int64
	SetLastNodePayment(ts int64) error
	IndexURL() string
}

// TransactionQuerier is the slice of the index service the scanner uses.
type TransactionQuerier interface {
	Transactions(baseURL, walletAddress string) (*index.TransactionPage, error)
	CurrentExchangeRate(baseURL string) (*index.ExchangeRate, error)
}

// Scanner sweeps the wallet's transaction list for payouts newer than the
// persisted watermark. Each qualifying transaction advances the watermark
// to its own timestamp immediately, so a scan that dies midway never
// re-reports what it already reported. Overlapping invocations are
// serialized internally.
type Scanner struct {
	Store    ConfigStore
	Index    TransactionQuerier
	Notifier notify.Notifier
	Log      *events.Log
	DB       *gorm.DB // payout history; optional

	mu sync.Mutex
}

// ScanForNewPayouts fetches the transaction list and exchange rate once,
// classifies every transaction and reports each new payout. It returns
// true iff at least one new payout was found. Requires the wallet address
// to have been resolved first.
func (s *Scanner) ScanForNewPayouts() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.Store.WalletAddress()
	if !ok {
		s.Log.Append("Wallet address is not configured, skipping earnings scan.")
		return false
	}

	indexURL := s.Store.IndexURL()
	page, err := s.Index.Transactions(indexURL, wallet)
	if err != nil {
		s.Log.Append("Could not fetch transaction history: " + err.Error())
		return false
	}

	// A missing rate only costs the fiat figure, not the payout report.
	rate := 0.0
	if xr, err := s.Index.CurrentExchangeRate(indexURL); err != nil {
		s.Log.Append("Could not fetch exchange rate: " + err.Error())
	} else {
		rate = xr.Rate
	}

	// The index does not guarantee chronological delivery. Evaluate oldest
	// first so an early high timestamp cannot mask older unreported payouts;
	// this makes the reported set independent of delivery order.
	txs := make([]index.Transaction, len(page.Results))
	copy(txs, page.Results)
	sort.Slice(txs, func(i, j int) bool { return txs[i].Timestamp < txs[j].Timestamp })

	found := false
	for _, tx := range txs {
		kind := Classify(tx)
		if kind == KindOther {
			continue
		}
		// The list is not guaranteed chronological and the watermark may
		// move under us, so decide per transaction against a fresh read.
		if tx.Timestamp <= s.Store.LastNodePayment() {
			continue
		}
		if err := s.Store.SetLastNodePayment(tx.Timestamp); err != nil {
			s.Log.Append("Could not persist the payment watermark: " + err.Error())
			continue
		}
		s.report(wallet, tx, kind, rate)
		found = true
	}
	return found
}

func (s *Scanner) report(wallet string, tx index.Transaction, kind Kind, rate float64) {
	amount := float64(tx.Amount) / 1_000_000
	fiat := amount * rate
	received := time.UnixMilli(tx.Timestamp).UTC()

	message := fmt.Sprintf("You earned %.6f XE ($%.2f)! The transaction was received on %s.",
		amount, fiat, received.Format(time.RFC1123))

	if s.DB != nil {
		payout := models.Payout{
			WalletAddress: wallet,
			Kind:          kind.Slug(),
			Sender:        tx.Sender,
			Memo:          tx.Data.Memo,
			Amount:        tx.Amount,
			FiatValue:     fiat,
			Timestamp:     tx.Timestamp,
		}
		if err := s.DB.Create(&payout).Error; err != nil {
			s.Log.Append("Could not record the payout: " + err.Error())
		}
	}

	s.Log.Append(message)
	s.Notifier.Notify(kind.Title(), message)
}
