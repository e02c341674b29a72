package loans

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftpawn/internal/platform/logger"
	"nftpawn/pkg/platform/sentinel"
)

// fakeSource scripts one source in the chain and counts how often it is hit.
type fakeSource struct {
	name  string
	loan  *Loan
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) LoanByID(_ context.Context, _ *big.Int) (*Loan, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.loan, nil
}

func notFound() error {
	return fmt.Errorf("missing: %w", sentinel.ErrNotFound)
}

func TestResolverPrefersFirstSource(t *testing.T) {
	indexer := &fakeSource{name: "subgraph", loan: testLoan()}
	node := &fakeSource{name: "node", loan: testLoan()}
	r, err := NewResolver(logger.New(), nil, indexer, node)
	require.NoError(t, err)

	loan, err := r.Resolve(context.Background(), big.NewInt(65))
	require.NoError(t, err)
	assert.Equal(t, int64(65), loan.ID.Int64())
	assert.Equal(t, 1, indexer.calls)
	assert.Equal(t, 0, node.calls, "node must not be consulted on an indexer hit")
}

func TestResolverFallsBackOnMiss(t *testing.T) {
	indexer := &fakeSource{name: "subgraph", err: notFound()}
	node := &fakeSource{name: "node", loan: testLoan()}
	r, err := NewResolver(logger.New(), nil, indexer, node)
	require.NoError(t, err)

	loan, err := r.Resolve(context.Background(), big.NewInt(65))
	require.NoError(t, err)
	assert.Equal(t, int64(65), loan.ID.Int64())
	assert.Equal(t, 1, node.calls)
}

func TestResolverFallsBackOnIndexerOutage(t *testing.T) {
	indexer := &fakeSource{name: "subgraph", err: fmt.Errorf("boom: %w", sentinel.ErrUnavailable)}
	node := &fakeSource{name: "node", loan: testLoan()}
	r, err := NewResolver(logger.New(), nil, indexer, node)
	require.NoError(t, err)

	loan, err := r.Resolve(context.Background(), big.NewInt(65))
	require.NoError(t, err)
	assert.NotNil(t, loan)
}

func TestResolverAbsorbsNodeFaults(t *testing.T) {
	indexer := &fakeSource{name: "subgraph", err: notFound()}
	node := &fakeSource{name: "node", err: errors.New("execution reverted")}
	r, err := NewResolver(logger.New(), nil, indexer, node)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), big.NewInt(65))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "node faults surface only as absence")
}

func TestResolverRejectsInvalidNodeRecord(t *testing.T) {
	invalid := testLoan()
	invalid.LoanAssetContractAddress = common.Address{}

	indexer := &fakeSource{name: "subgraph", err: notFound()}
	node := &fakeSource{name: "node", loan: invalid}
	r, err := NewResolver(logger.New(), nil, indexer, node)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), big.NewInt(65))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestResolverMissEverywhere(t *testing.T) {
	indexer := &fakeSource{name: "subgraph", err: notFound()}
	node := &fakeSource{name: "node", err: notFound()}
	r, err := NewResolver(logger.New(), nil, indexer, node)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), big.NewInt(404))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestResolverIsIdempotent(t *testing.T) {
	indexer := &fakeSource{name: "subgraph", loan: testLoan()}
	r, err := NewResolver(logger.New(), nil, indexer)
	require.NoError(t, err)

	first, err := r.Resolve(context.Background(), big.NewInt(65))
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), big.NewInt(65))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolverRequiresSources(t *testing.T) {
	_, err := NewResolver(logger.New(), nil)
	assert.Error(t, err)
}
