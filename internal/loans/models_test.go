package loans

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func testLoan() *Loan {
	lender := common.HexToAddress("0x31fd8d16641d06e1eaaa1e6ebe3c592388b8ed10")
	return &Loan{
		ID:                       big.NewInt(65),
		Borrower:                 common.HexToAddress("0x0dd7d78ed27632839cd2a929ee570ead346c19fc"),
		Lender:                   &lender,
		LoanAssetContractAddress: common.HexToAddress("0x6b175474e89094c44da98b954eedeac495271d0f"),
		LoanAssetSymbol:          "DAI",
		LoanAssetDecimals:        18,
		LoanAmount:               big.NewInt(1e18),
		PerSecondInterestRate:    big.NewInt(10),
		AccumulatedInterest:      big.NewInt(0),
		LastAccumulatedTimestamp: 1_650_000_000,
		DurationSeconds:          864_000,
		EndDateTimestamp:         1_650_864_000,
		CollateralTokenID:        big.NewInt(12),
		CollateralName:           "Monarchs",
	}
}

func TestLoanStatus(t *testing.T) {
	t.Run("closed wins over everything", func(t *testing.T) {
		loan := testLoan()
		loan.Closed = true
		assert.Equal(t, StatusClosed, loan.Status(time.Unix(loan.EndDateTimestamp+1, 0)))
	})

	t.Run("no accumulation means awaiting lender", func(t *testing.T) {
		loan := testLoan()
		loan.LastAccumulatedTimestamp = 0
		loan.Lender = nil
		loan.EndDateTimestamp = 0
		assert.Equal(t, StatusAwaitingLender, loan.Status(time.Unix(1_650_000_000, 0)))
	})

	t.Run("past the end date means past due", func(t *testing.T) {
		loan := testLoan()
		assert.Equal(t, StatusPastDue, loan.Status(time.Unix(loan.EndDateTimestamp+1, 0)))
	})

	t.Run("accruing inside the term", func(t *testing.T) {
		loan := testLoan()
		assert.Equal(t, StatusAccruing, loan.Status(time.Unix(loan.EndDateTimestamp-1, 0)))
	})

	t.Run("status is recomputed, not stored", func(t *testing.T) {
		loan := testLoan()
		assert.Equal(t, StatusAccruing, loan.Status(time.Unix(loan.EndDateTimestamp-1, 0)))
		assert.Equal(t, StatusPastDue, loan.Status(time.Unix(loan.EndDateTimestamp+1, 0)))
	})
}

func TestLoanValid(t *testing.T) {
	loan := testLoan()
	assert.True(t, loan.Valid())

	loan.LoanAssetContractAddress = common.Address{}
	assert.False(t, loan.Valid())
}
