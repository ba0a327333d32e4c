package earnings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Edge-Works/EdgeNodeObserver/internal/index"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		sender string
		memo   string
		want   Kind
	}{
		{"node earning", NodeEarningsSender, "Node Earnings", KindNodeEarning},
		{"node earning with suffix", NodeEarningsSender, "Node Earnings 2023-01-12", KindNodeEarning},
		{"lottery winning", LotterySender, "Lottery Winnings", KindLotteryWinning},
		{"memo without known sender", "xe_stranger", "Node Earnings", KindOther},
		{"sender without marker memo", NodeEarningsSender, "refund", KindOther},
		{"lottery memo from earnings wallet", NodeEarningsSender, "Lottery Winnings", KindOther},
		{"empty memo", NodeEarningsSender, "", KindOther},
		{"plain transfer", "xe_friend", "thanks for lunch", KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := index.Transaction{Sender: tc.sender, Data: index.TransactionData{Memo: tc.memo}}
			assert.Equal(t, tc.want, Classify(tx))
		})
	}
}

func TestKindTitles(t *testing.T) {
	assert.Equal(t, "Received Node Earnings", KindNodeEarning.Title())
	assert.Equal(t, "Received Lottery Winnings", KindLotteryWinning.Title())
	assert.Equal(t, "node_earning", KindNodeEarning.Slug())
	assert.Equal(t, "lottery_winning", KindLotteryWinning.Slug())
}
