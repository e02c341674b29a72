// Package node resolves loans straight from the authoritative chain node.
// It is slower and rate-limited, so the resolver only consults it when the
// subgraph has not indexed a loan yet.
package node

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"nftpawn/internal/loans"
	"nftpawn/internal/loans/cache"
)

// ContractCaller is the subset of the Ethereum RPC the source needs.
// *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Directory holds the protocol contract addresses.
type Directory struct {
	LoanFacilitator common.Address
	LendTicket      common.Address
	BorrowTicket    common.Address
}

const facilitatorABIJSON = `[
  {"type":"function","name":"loanInfo","stateMutability":"view",
   "inputs":[{"name":"loanId","type":"uint256"}],
   "outputs":[
     {"name":"closed","type":"bool"},
     {"name":"perSecondInterestRate","type":"uint256"},
     {"name":"durationSeconds","type":"uint256"},
     {"name":"lastAccumulatedTimestamp","type":"uint256"},
     {"name":"collateralContractAddress","type":"address"},
     {"name":"allowLoanAmountIncrease","type":"bool"},
     {"name":"loanAmount","type":"uint256"},
     {"name":"collateralTokenId","type":"uint256"},
     {"name":"loanAssetContractAddress","type":"address"},
     {"name":"accumulatedInterest","type":"uint256"}
   ]},
  {"type":"function","name":"interestOwed","stateMutability":"view",
   "inputs":[{"name":"loanId","type":"uint256"}],
   "outputs":[{"name":"","type":"uint256"}]}
]`

const erc20ABIJSON = `[
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

const erc721ABIJSON = `[
  {"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}
]`

// Source assembles a Loan field-by-field from contract state getters.
type Source struct {
	caller      ContractCaller
	dir         Directory
	facilitator abi.ABI
	erc20       abi.ABI
	erc721      abi.ABI
	meta        cache.Store
	callTimeout time.Duration
}

// New builds a node source. meta may be nil to disable metadata memoization.
func New(caller ContractCaller, dir Directory, meta cache.Store) (*Source, error) {
	facilitator, err := abi.JSON(strings.NewReader(facilitatorABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse facilitator ABI: %w", err)
	}
	erc20, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 ABI: %w", err)
	}
	erc721, err := abi.JSON(strings.NewReader(erc721ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse erc721 ABI: %w", err)
	}
	return &Source{
		caller:      caller,
		dir:         dir,
		facilitator: facilitator,
		erc20:       erc20,
		erc721:      erc721,
		meta:        meta,
		callTimeout: 10 * time.Second,
	}, nil
}

// Name identifies this source in resolver logs and metrics.
func (s *Source) Name() string { return "node" }

// LoanByID reads the loan from chain state. A loan the facilitator does not
// know yields empty terms (zero loan-asset address), which the resolver
// rejects as invalid; every fault here surfaces as an error for the resolver
// to absorb.
func (s *Source) LoanByID(ctx context.Context, loanID *big.Int) (*loans.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var info struct {
		Closed                    bool
		PerSecondInterestRate     *big.Int
		DurationSeconds           *big.Int
		LastAccumulatedTimestamp  *big.Int
		CollateralContractAddress common.Address
		AllowLoanAmountIncrease   bool
		LoanAmount                *big.Int
		CollateralTokenID         *big.Int `abi:"collateralTokenId"`
		LoanAssetContractAddress  common.Address
		AccumulatedInterest       *big.Int
	}
	if err := s.call(ctx, s.facilitator, s.dir.LoanFacilitator, &info, "loanInfo", loanID); err != nil {
		return nil, fmt.Errorf("loanInfo(%s): %w", loanID.String(), err)
	}

	loan := &loans.Loan{
		ID:                        new(big.Int).Set(loanID),
		LoanAssetContractAddress:  info.LoanAssetContractAddress,
		LoanAmount:                info.LoanAmount,
		PerSecondInterestRate:     info.PerSecondInterestRate,
		AccumulatedInterest:       info.AccumulatedInterest,
		LastAccumulatedTimestamp:  info.LastAccumulatedTimestamp.Int64(),
		DurationSeconds:           info.DurationSeconds.Int64(),
		CollateralContractAddress: info.CollateralContractAddress,
		CollateralTokenID:         info.CollateralTokenID,
		Closed:                    info.Closed,
		AllowLoanAmountIncrease:   info.AllowLoanAmountIncrease,
	}
	if !loan.Valid() {
		// Unknown id: the facilitator hands back empty terms rather than
		// reverting. Stop before touching the zero asset contract.
		return loan, nil
	}

	symbol, decimals, err := s.erc20Metadata(ctx, info.LoanAssetContractAddress)
	if err != nil {
		return nil, err
	}
	loan.LoanAssetSymbol = symbol
	loan.LoanAssetDecimals = decimals

	if loan.LastAccumulatedTimestamp != 0 {
		var lender common.Address
		if err := s.call(ctx, s.erc721, s.dir.LendTicket, &lender, "ownerOf", loanID); err != nil {
			return nil, fmt.Errorf("lend ticket ownerOf(%s): %w", loanID.String(), err)
		}
		loan.Lender = &lender
		loan.EndDateTimestamp = loan.LastAccumulatedTimestamp + loan.DurationSeconds
	}

	var owed *big.Int
	if err := s.call(ctx, s.facilitator, s.dir.LoanFacilitator, &owed, "interestOwed", loanID); err != nil {
		return nil, fmt.Errorf("interestOwed(%s): %w", loanID.String(), err)
	}
	loan.InterestOwed = owed

	var borrower common.Address
	if err := s.call(ctx, s.erc721, s.dir.BorrowTicket, &borrower, "ownerOf", loanID); err != nil {
		return nil, fmt.Errorf("borrow ticket ownerOf(%s): %w", loanID.String(), err)
	}
	loan.Borrower = borrower

	tokenURI, collateralName, err := s.collateralMetadata(ctx, info.CollateralContractAddress, info.CollateralTokenID)
	if err != nil {
		return nil, err
	}
	loan.CollateralTokenURI = tokenURI
	loan.CollateralName = collateralName

	return loan, nil
}

type erc20Meta struct {
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

func (s *Source) erc20Metadata(ctx context.Context, asset common.Address) (string, int, error) {
	key := "erc20:" + asset.Hex()
	if s.meta != nil {
		if raw, ok := s.meta.Get(ctx, key); ok {
			var m erc20Meta
			if json.Unmarshal([]byte(raw), &m) == nil {
				return m.Symbol, m.Decimals, nil
			}
		}
	}

	var decimals uint8
	if err := s.call(ctx, s.erc20, asset, &decimals, "decimals"); err != nil {
		return "", 0, fmt.Errorf("decimals(%s): %w", asset.Hex(), err)
	}
	var symbol string
	if err := s.call(ctx, s.erc20, asset, &symbol, "symbol"); err != nil {
		return "", 0, fmt.Errorf("symbol(%s): %w", asset.Hex(), err)
	}

	if s.meta != nil {
		if raw, err := json.Marshal(erc20Meta{Symbol: symbol, Decimals: int(decimals)}); err == nil {
			s.meta.Set(ctx, key, string(raw))
		}
	}
	return symbol, int(decimals), nil
}

type collateralMeta struct {
	TokenURI string `json:"tokenURI"`
	Name     string `json:"name"`
}

func (s *Source) collateralMetadata(ctx context.Context, contract common.Address, tokenID *big.Int) (string, string, error) {
	key := fmt.Sprintf("erc721:%s:%s", contract.Hex(), tokenID.String())
	if s.meta != nil {
		if raw, ok := s.meta.Get(ctx, key); ok {
			var m collateralMeta
			if json.Unmarshal([]byte(raw), &m) == nil {
				return m.TokenURI, m.Name, nil
			}
		}
	}

	var tokenURI string
	if err := s.call(ctx, s.erc721, contract, &tokenURI, "tokenURI", tokenID); err != nil {
		return "", "", fmt.Errorf("tokenURI(%s, %s): %w", contract.Hex(), tokenID.String(), err)
	}
	var name string
	if err := s.call(ctx, s.erc721, contract, &name, "name"); err != nil {
		return "", "", fmt.Errorf("name(%s): %w", contract.Hex(), err)
	}

	if s.meta != nil {
		if raw, err := json.Marshal(collateralMeta{TokenURI: tokenURI, Name: name}); err == nil {
			s.meta.Set(ctx, key, string(raw))
		}
	}
	return tokenURI, name, nil
}

// call packs, executes and unpacks one view call.
func (s *Source) call(ctx context.Context, contractABI abi.ABI, to common.Address, out any, method string, args ...any) error {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := s.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	if err := contractABI.UnpackIntoInterface(out, method, raw); err != nil {
		return fmt.Errorf("unpack %s: %w", method, err)
	}
	return nil
}
