package notifications

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"nftpawn/internal/loans"
)

func renderLoan() *loans.Loan {
	lender := common.HexToAddress("0x31fd8d16641d06e1eaaa1e6ebe3c592388b8ed10")
	return &loans.Loan{
		ID:                       big.NewInt(65),
		Borrower:                 common.HexToAddress("0x0dd7d78ed27632839cd2a929ee570ead346c19fc"),
		Lender:                   &lender,
		LoanAssetSymbol:          "DAI",
		LoanAssetDecimals:        18,
		LoanAmount:               new(big.Int).SetUint64(8_193_000_000_000_000_000), // 8.193 DAI
		PerSecondInterestRate:    big.NewInt(10),
		AccumulatedInterest:      new(big.Int).SetUint64(5e17),
		InterestOwed:             new(big.Int).SetUint64(25e16),
		LastAccumulatedTimestamp: 1_650_000_000,
		DurationSeconds:          864_000,
		EndDateTimestamp:         1_650_864_000,
		CollateralName:           "Monarchs",
	}
}

func TestRenderSubjectsPerTrigger(t *testing.T) {
	cases := []struct {
		kind    TriggerKind
		subject string
	}{
		{TriggerMint, "Loan #65 (Monarchs) has been created"},
		{TriggerLend, "Loan #65 (Monarchs) has been funded"},
		{TriggerBuyout, "Your position in Loan #65 (Monarchs) was bought out"},
		{TriggerRepayment, "Loan #65 (Monarchs) has been repaid"},
		{TriggerCollateralSeizure, "Collateral for Loan #65 (Monarchs) was seized"},
		{TriggerLiquidationOccurring, "Loan #65 (Monarchs) can be liquidated in 24 hours"},
		{TriggerLiquidationOccurred, "Loan #65 (Monarchs) is past due"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			msg := Renderer{}.Render(LifecycleEvent{Kind: tc.kind, Loan: renderLoan()}, false)
			assert.Equal(t, tc.subject, msg.Subject)
			assert.NotEmpty(t, msg.Body)
		})
	}
}

func TestRenderLendBuyoutWording(t *testing.T) {
	event := LifecycleEvent{Kind: TriggerLend, Loan: renderLoan()}

	funded := Renderer{}.Render(event, false)
	assert.Contains(t, funded.Subject, "has been funded")

	boughtOut := Renderer{}.Render(event, true)
	assert.Contains(t, boughtOut.Subject, "has a new lender")
	assert.Contains(t, boughtOut.Body, "bought out")
}

func TestRenderBuyoutShowsPreviousTerms(t *testing.T) {
	event := LifecycleEvent{
		Kind: TriggerBuyout,
		Loan: renderLoan(),
		MostRecentTermsEvent: &loans.TermsEvent{
			LoanAmount:            new(big.Int).SetUint64(5e18),
			PerSecondInterestRate: big.NewInt(20),
			DurationSeconds:       432_000,
		},
	}

	msg := Renderer{}.Render(event, false)
	assert.Contains(t, msg.Body, "Previous terms: 5 DAI, 5 days")
}

func TestRenderFallsBackWithoutCollateralName(t *testing.T) {
	loan := renderLoan()
	loan.CollateralName = ""

	msg := Renderer{}.Render(LifecycleEvent{Kind: TriggerMint, Loan: loan}, false)
	assert.Contains(t, msg.Subject, "Loan #65 (your collateral)")
}

func TestFormatUnits(t *testing.T) {
	cases := []struct {
		name     string
		amount   *big.Int
		decimals int
		want     string
	}{
		{"trims trailing zeros", new(big.Int).SetUint64(8_193_000_000_000_000_000), 18, "8.193"},
		{"whole amount", new(big.Int).SetUint64(2e18), 18, "2"},
		{"smaller than one", big.NewInt(5), 2, "0.05"},
		{"zero decimals", big.NewInt(42), 0, "42"},
		{"nil is zero", nil, 18, "0"},
		{"negative", big.NewInt(-150), 2, "-1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatUnits(tc.amount, tc.decimals))
		})
	}
}

func TestAnnualRate(t *testing.T) {
	// 10 × 31,536,000 seconds = 315,360,000, scaled down by 1e8.
	assert.Equal(t, "3.1536", annualRate(big.NewInt(10)))
	assert.Equal(t, "0", annualRate(nil))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "10 days", formatDuration(864_000))
	assert.Equal(t, "1 day", formatDuration(86_400))
}
