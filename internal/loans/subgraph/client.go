// Package subgraph queries the nft-backed-loans subgraph, the eventually
// consistent indexer built from chain event logs. It serves both the resolver
// (loan by id) and the liquidation scanner (loans by deadline window).
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"nftpawn/internal/loans"
	"nftpawn/pkg/platform/sentinel"
)

const loanProperties = `
    id
    loanAssetContractAddress
    collateralContractAddress
    collateralTokenId
    perSecondInterestRate
    accumulatedInterest
    lastAccumulatedTimestamp
    durationSeconds
    loanAmount
    closed
    loanAssetDecimal
    loanAssetSymbol
    lendTicketHolder
    borrowTicketHolder
    endDateTimestamp
    collateralTokenURI
    collateralName
`

const loanByIDQuery = `query ($id: ID!) {
  loan(id: $id) {` + loanProperties + `}
}`

const loansExpiringWithinQuery = `query ($start: BigInt!, $end: BigInt!) {
  loans(where: { endDateTimestamp_gte: $start, endDateTimestamp_lt: $end, closed: false }) {` + loanProperties + `}
}`

const activeLoansQuery = `query ($first: Int!) {
  loans(where: { closed: false }, first: $first, orderBy: createdAtTimestamp, orderDirection: desc) {` + loanProperties + `}
}`

const loansForAddressQuery = `query ($address: String!) {
  borrowed: loans(where: { borrowTicketHolder: $address }) {` + loanProperties + `}
  lent: loans(where: { lendTicketHolder: $address }) {` + loanProperties + `}
}`

const buyoutByTransactionQuery = `query ($id: ID!) {
  buyoutEvent(id: $id) {
    id
    lendTicketHolder
  }
}`

// Client is a thin GraphQL-over-HTTP client. The subgraph speaks plain JSON
// POST, so no query-builder machinery is needed.
type Client struct {
	url  string
	http *http.Client
}

// New builds a subgraph client against the given endpoint.
func New(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies this source in resolver logs and metrics.
func (c *Client) Name() string { return "subgraph" }

// LoanByID returns the indexed loan, or sentinel.ErrNotFound when the
// subgraph has not indexed the id yet.
func (c *Client) LoanByID(ctx context.Context, loanID *big.Int) (*loans.Loan, error) {
	var out struct {
		Loan *loanRecord `json:"loan"`
	}
	err := c.query(ctx, loanByIDQuery, map[string]any{"id": loanID.String()}, &out)
	if err != nil {
		return nil, err
	}
	if out.Loan == nil {
		return nil, fmt.Errorf("loan %s not indexed: %w", loanID.String(), sentinel.ErrNotFound)
	}
	return out.Loan.parse()
}

// LoansExpiringWithin returns open loans whose liquidation deadline falls in
// [start, end).
func (c *Client) LoansExpiringWithin(ctx context.Context, start, end int64) ([]*loans.Loan, error) {
	var out struct {
		Loans []*loanRecord `json:"loans"`
	}
	vars := map[string]any{
		"start": fmt.Sprintf("%d", start),
		"end":   fmt.Sprintf("%d", end),
	}
	if err := c.query(ctx, loansExpiringWithinQuery, vars, &out); err != nil {
		return nil, err
	}
	return parseAll(out.Loans)
}

// ActiveLoans returns the most recently created open loans.
func (c *Client) ActiveLoans(ctx context.Context, limit int) ([]*loans.Loan, error) {
	var out struct {
		Loans []*loanRecord `json:"loans"`
	}
	if err := c.query(ctx, activeLoansQuery, map[string]any{"first": limit}, &out); err != nil {
		return nil, err
	}
	return parseAll(out.Loans)
}

// LoansForAddress returns all loans where the address holds either ticket.
func (c *Client) LoansForAddress(ctx context.Context, address string) ([]*loans.Loan, error) {
	var out struct {
		Borrowed []*loanRecord `json:"borrowed"`
		Lent     []*loanRecord `json:"lent"`
	}
	err := c.query(ctx, loansForAddressQuery, map[string]any{"address": address}, &out)
	if err != nil {
		return nil, err
	}
	return parseAll(append(out.Borrowed, out.Lent...))
}

// BuyoutForTransaction looks up a buyout event indexed under the transaction
// hash. The dispatcher uses it to tell a first underwrite from one that
// displaces a prior lender; the returned address is the displaced lender.
func (c *Client) BuyoutForTransaction(ctx context.Context, txHash string) (string, bool, error) {
	var out struct {
		BuyoutEvent *struct {
			ID               string `json:"id"`
			LendTicketHolder string `json:"lendTicketHolder"`
		} `json:"buyoutEvent"`
	}
	if err := c.query(ctx, buyoutByTransactionQuery, map[string]any{"id": txHash}, &out); err != nil {
		return "", false, err
	}
	if out.BuyoutEvent == nil {
		return "", false, nil
	}
	return out.BuyoutEvent.LendTicketHolder, true, nil
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": vars,
	})
	if err != nil {
		return fmt.Errorf("marshal subgraph query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build subgraph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("subgraph request: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("subgraph returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode subgraph response: %w", sentinel.ErrMalformed)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("subgraph error: %s: %w", envelope.Errors[0].Message, sentinel.ErrUnavailable)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode subgraph data: %w", sentinel.ErrMalformed)
	}
	return nil
}

func parseAll(records []*loanRecord) ([]*loans.Loan, error) {
	parsed := make([]*loans.Loan, 0, len(records))
	for _, rec := range records {
		loan, err := rec.parse()
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, loan)
	}
	return parsed, nil
}
