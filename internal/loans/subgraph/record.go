package subgraph

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftpawn/internal/loans"
	"nftpawn/pkg/platform/sentinel"
)

// loanRecord mirrors the subgraph schema. BigInt fields arrive as decimal
// strings; loanAssetDecimal is a plain Int. The stored status field is
// deliberately ignored so status is always re-derived from timestamps.
type loanRecord struct {
	ID                        string `json:"id"`
	LoanAssetContractAddress  string `json:"loanAssetContractAddress"`
	CollateralContractAddress string `json:"collateralContractAddress"`
	CollateralTokenID         string `json:"collateralTokenId"`
	PerSecondInterestRate     string `json:"perSecondInterestRate"`
	AccumulatedInterest       string `json:"accumulatedInterest"`
	LastAccumulatedTimestamp  string `json:"lastAccumulatedTimestamp"`
	DurationSeconds           string `json:"durationSeconds"`
	LoanAmount                string `json:"loanAmount"`
	Closed                    bool   `json:"closed"`
	LoanAssetDecimal          int    `json:"loanAssetDecimal"`
	LoanAssetSymbol           string `json:"loanAssetSymbol"`
	LendTicketHolder          string `json:"lendTicketHolder"`
	BorrowTicketHolder        string `json:"borrowTicketHolder"`
	EndDateTimestamp          string `json:"endDateTimestamp"`
	CollateralTokenURI        string `json:"collateralTokenURI"`
	CollateralName            string `json:"collateralName"`
}

func (r *loanRecord) parse() (*loans.Loan, error) {
	id, err := bigFromDecimal(r.ID)
	if err != nil {
		return nil, fmt.Errorf("loan id %q: %w", r.ID, sentinel.ErrMalformed)
	}
	amount, err := bigFromDecimal(r.LoanAmount)
	if err != nil {
		return nil, fmt.Errorf("loan %s amount: %w", r.ID, sentinel.ErrMalformed)
	}
	rate, err := bigFromDecimal(r.PerSecondInterestRate)
	if err != nil {
		return nil, fmt.Errorf("loan %s rate: %w", r.ID, sentinel.ErrMalformed)
	}
	accumulated, err := bigFromDecimal(r.AccumulatedInterest)
	if err != nil {
		return nil, fmt.Errorf("loan %s accumulated interest: %w", r.ID, sentinel.ErrMalformed)
	}
	tokenID, err := bigFromDecimal(r.CollateralTokenID)
	if err != nil {
		return nil, fmt.Errorf("loan %s collateral token id: %w", r.ID, sentinel.ErrMalformed)
	}

	loan := &loans.Loan{
		ID:                        id,
		Borrower:                  common.HexToAddress(r.BorrowTicketHolder),
		LoanAssetContractAddress:  common.HexToAddress(r.LoanAssetContractAddress),
		LoanAssetSymbol:           r.LoanAssetSymbol,
		LoanAssetDecimals:         r.LoanAssetDecimal,
		LoanAmount:                amount,
		PerSecondInterestRate:     rate,
		AccumulatedInterest:       accumulated,
		InterestOwed:              accumulated,
		LastAccumulatedTimestamp:  int64FromDecimal(r.LastAccumulatedTimestamp),
		DurationSeconds:           int64FromDecimal(r.DurationSeconds),
		EndDateTimestamp:          int64FromDecimal(r.EndDateTimestamp),
		CollateralContractAddress: common.HexToAddress(r.CollateralContractAddress),
		CollateralTokenID:         tokenID,
		CollateralTokenURI:        r.CollateralTokenURI,
		CollateralName:            r.CollateralName,
		Closed:                    r.Closed,
	}
	if loan.LastAccumulatedTimestamp != 0 && r.LendTicketHolder != "" {
		lender := common.HexToAddress(r.LendTicketHolder)
		loan.Lender = &lender
	}
	return loan, nil
}

func bigFromDecimal(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal integer: %q", s)
	}
	return n, nil
}

func int64FromDecimal(s string) int64 {
	n, err := bigFromDecimal(s)
	if err != nil {
		return 0
	}
	return n.Int64()
}
