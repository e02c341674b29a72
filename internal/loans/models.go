package loans

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Status is the lifecycle state of a loan. It is always derived from the
// timestamp fields and never stored, so it cannot go stale.
type Status string

const (
	StatusAwaitingLender Status = "AwaitingLender"
	StatusAccruing       Status = "Accruing"
	StatusPastDue        Status = "PastDue"
	StatusClosed         Status = "Closed"
)

// Loan is the canonical lifecycle record, reconstructed fresh per query from
// either the subgraph or the node. Addresses are checksummed on the way in.
type Loan struct {
	ID *big.Int `json:"id"`

	Borrower common.Address `json:"borrower"`
	// Lender is nil until the loan is underwritten.
	Lender *common.Address `json:"lender"`

	LoanAssetContractAddress common.Address `json:"loanAssetContractAddress"`
	LoanAssetSymbol          string         `json:"loanAssetSymbol"`
	LoanAssetDecimals        int            `json:"loanAssetDecimals"`

	LoanAmount               *big.Int `json:"loanAmount"`
	PerSecondInterestRate    *big.Int `json:"perSecondInterestRate"`
	AccumulatedInterest      *big.Int `json:"accumulatedInterest"`
	InterestOwed             *big.Int `json:"interestOwed"`
	LastAccumulatedTimestamp int64    `json:"lastAccumulatedTimestamp"`
	DurationSeconds          int64    `json:"durationSeconds"`
	// EndDateTimestamp is defined only once a lender exists; zero otherwise.
	EndDateTimestamp int64 `json:"endDateTimestamp"`

	CollateralContractAddress common.Address `json:"collateralContractAddress"`
	CollateralTokenID         *big.Int       `json:"collateralTokenId"`
	CollateralTokenURI        string         `json:"collateralTokenURI"`
	CollateralName            string         `json:"collateralName"`

	Closed                  bool `json:"closed"`
	AllowLoanAmountIncrease bool `json:"allowLoanAmountIncrease"`
}

// Status derives the lifecycle state at the given instant.
func (l *Loan) Status(now time.Time) Status {
	switch {
	case l.Closed:
		return StatusClosed
	case l.LastAccumulatedTimestamp == 0:
		return StatusAwaitingLender
	case now.Unix() > l.EndDateTimestamp:
		return StatusPastDue
	default:
		return StatusAccruing
	}
}

// Valid reports whether the record is structurally usable. A zero loan-asset
// address marks a loan that does not exist on chain; the facilitator returns
// empty terms rather than reverting for unknown ids.
func (l *Loan) Valid() bool {
	return l.LoanAssetContractAddress != (common.Address{})
}

// TermsEvent captures the previous loan terms attached to a buyout so the
// notification can show what changed.
type TermsEvent struct {
	ID                    string   `json:"id"`
	Lender                string   `json:"lender"`
	LoanAmount            *big.Int `json:"loanAmount"`
	DurationSeconds       int64    `json:"durationSeconds"`
	PerSecondInterestRate *big.Int `json:"perSecondInterestRate"`
	Timestamp             int64    `json:"timestamp"`
}
