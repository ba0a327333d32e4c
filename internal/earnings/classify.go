// Package earnings watches the payout wallet for new earnings and lottery
// winnings and reports each exactly once.
package earnings

import (
	"strings"

	"github.com/Edge-Works/EdgeNodeObserver/internal/index"
)

// Kind classifies a wallet transaction.
type Kind int

const (
	KindOther Kind = iota
	KindNodeEarning
	KindLotteryWinning
)

// Well-known XE mainnet payout wallets. A payout is only recognized when
// the marker memo AND the expected sender both match, so a third party
// cannot spoof a payout by copying the memo text.
const (
	NodeEarningsSender = "xe_7Bb7F18531703e68e344786bcA55c47A2C3c8E82"
	LotterySender      = "xe_376437a6Cf60b2a1a4C4f9C4dE49d9a165a5C542"

	nodeEarningsMarker = "Node Earnings"
	lotteryMarker      = "Lottery Winnings"
)

type rule struct {
	marker string
	sender string
	kind   Kind
}

var rules = []rule{
	{nodeEarningsMarker, NodeEarningsSender, KindNodeEarning},
	{lotteryMarker, LotterySender, KindLotteryWinning},
}

// Classify tags a transaction as a payout kind, or KindOther when it
// matches no rule. Pure; no network or store access.
func Classify(tx index.Transaction) Kind {
	for _, r := range rules {
		if strings.Contains(tx.Data.Memo, r.marker) && tx.Sender == r.sender {
			return r.kind
		}
	}
	return KindOther
}

// Slug is the persisted form of the kind.
func (k Kind) Slug() string {
	switch k {
	case KindNodeEarning:
		return "node_earning"
	case KindLotteryWinning:
		return "lottery_winning"
	}
	return "other"
}

// Title is the notification title for the kind.
func (k Kind) Title() string {
	if k == KindLotteryWinning {
		return "Received Lottery Winnings"
	}
	return "Received Node Earnings"
}
