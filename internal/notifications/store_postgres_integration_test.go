//go:build integration

package notifications_test

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"nftpawn/internal/notifications"
	"nftpawn/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	subs       *notifications.PostgresSubscriptionStore
	watermarks *notifications.PostgresWatermarkStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(notifications.Migrate(context.Background(), s.postgres.DB))
	s.subs = notifications.NewPostgresSubscriptionStore(s.postgres.DB)
	s.watermarks = notifications.NewPostgresWatermarkStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(),
		"notification_subscriptions", "scan_watermark")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) insertSubscription(address, channel, destination string, triggers ...string) {
	_, err := s.postgres.DB.Exec(`
		INSERT INTO notification_subscriptions (address, channel, delivery_destination, enrolled_triggers)
		VALUES ($1, $2, $3, $4)`,
		address, channel, destination, pq.Array(triggers),
	)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestForAddressIsCaseInsensitive() {
	ctx := context.Background()
	s.insertSubscription("0x0Dd7d78ED27632839cD2a929EE570eAd346C19fC",
		"email", "borrower@example.com", "RepaymentEvent", "LendEvent")

	subs, err := s.subs.ForAddress(ctx, "0x0dd7d78ed27632839cd2a929ee570ead346c19fc")
	s.Require().NoError(err)
	s.Require().Len(subs, 1)
	s.Equal(notifications.ChannelEmail, subs[0].Channel)
	s.Equal("borrower@example.com", subs[0].DeliveryDestination)
	s.Equal([]notifications.TriggerKind{
		notifications.TriggerRepayment,
		notifications.TriggerLend,
	}, subs[0].EnrolledTriggers)
}

func (s *PostgresStoreSuite) TestForAddressUnknownYieldsEmpty() {
	subs, err := s.subs.ForAddress(context.Background(),
		"0x31fd8d16641d06e1eaaa1e6ebe3c592388b8ed10")
	s.Require().NoError(err)
	s.Empty(subs)
}

func (s *PostgresStoreSuite) TestMultipleDestinationsPerAddress() {
	ctx := context.Background()
	s.insertSubscription("0x0dd7d78ed27632839cd2a929ee570ead346c19fc",
		"email", "borrower@example.com")
	s.insertSubscription("0x0dd7d78ed27632839cd2a929ee570ead346c19fc",
		"webhook", "https://hooks.example.com/abc")

	subs, err := s.subs.ForAddress(ctx, "0x0dd7d78ed27632839cd2a929ee570ead346c19fc")
	s.Require().NoError(err)
	s.Len(subs, 2)
}

func (s *PostgresStoreSuite) TestWatermarkLifecycle() {
	ctx := context.Background()

	_, ok, err := s.watermarks.Last(ctx)
	s.Require().NoError(err)
	s.False(ok, "empty table means no watermark")

	s.Require().NoError(s.watermarks.Override(ctx, 1_650_000_000))
	ts, ok, err := s.watermarks.Last(ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(int64(1_650_000_000), ts)

	// Second override exercises the upsert path.
	s.Require().NoError(s.watermarks.Override(ctx, 1_650_030_000))
	ts, _, err = s.watermarks.Last(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1_650_030_000), ts)
}

func (s *PostgresStoreSuite) TestMigrateIsIdempotent() {
	s.NoError(notifications.Migrate(context.Background(), s.postgres.DB))
}
