package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

var testDataset = schema.NewDatasetWithExtras([]schema.HealthRecord{
	{Thermoregulation: 36.65, HeartRateVariation: 77.82, BloodOxygen: 100.47, ActivityLevel: 0, SleepPatterns: 3.05, HormoneImbalance: 1},
	{Thermoregulation: 36.01, HeartRateVariation: 60.88, BloodOxygen: 97.77, ActivityLevel: 4, SleepPatterns: 5.67, HormoneImbalance: 0},
}, []string{"PatientID"}, [][]string{{"p-1"}, {"p-2"}})

type MemoryStoreTestSuite struct {
	suite.Suite
	clock time.Time
	store *memoryStore
}

func NewMemoryStoreTestSuite() *MemoryStoreTestSuite {
	return &MemoryStoreTestSuite{}
}

func (s *MemoryStoreTestSuite) SetupTest() {
	s.clock = time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
	s.store = newMemoryStore(30*time.Minute, func() time.Time { return s.clock })
}

func (s *MemoryStoreTestSuite) TestSaveAndGet() {
	ctx := context.Background()

	id, err := s.store.Save(ctx, testDataset)
	s.NoError(err)
	s.NotEmpty(id)

	d, err := s.store.Get(ctx, id)
	s.NoError(err)
	s.Equal(testDataset.Records(), d.Records())
	s.Equal([]string{"p-2"}, d.Extras(1))
}

func (s *MemoryStoreTestSuite) TestSaveGivesDistinctIDs() {
	ctx := context.Background()

	id1, err := s.store.Save(ctx, testDataset)
	s.NoError(err)
	id2, err := s.store.Save(ctx, testDataset)
	s.NoError(err)
	s.NotEqual(id1, id2)
}

func (s *MemoryStoreTestSuite) TestGetUnknownDataset() {
	_, err := s.store.Get(context.Background(), "unknown")
	s.Equal(ErrDatasetNotFound, err)
}

func (s *MemoryStoreTestSuite) TestSessionExpires() {
	ctx := context.Background()

	id, err := s.store.Save(ctx, testDataset)
	s.NoError(err)

	s.clock = s.clock.Add(29 * time.Minute)
	_, err = s.store.Get(ctx, id)
	s.NoError(err)

	s.clock = s.clock.Add(time.Minute)
	_, err = s.store.Get(ctx, id)
	s.Equal(ErrDatasetNotFound, err)
	s.Empty(s.store.entries)
}

func (s *MemoryStoreTestSuite) TestSavePurgesExpiredSessions() {
	ctx := context.Background()

	_, err := s.store.Save(ctx, testDataset)
	s.NoError(err)

	s.clock = s.clock.Add(time.Hour)
	id, err := s.store.Save(ctx, testDataset)
	s.NoError(err)
	s.Len(s.store.entries, 1)
	s.Contains(s.store.entries, id)
}

func (s *MemoryStoreTestSuite) TestDelete() {
	ctx := context.Background()

	id, err := s.store.Save(ctx, testDataset)
	s.NoError(err)

	s.NoError(s.store.Delete(ctx, id))
	_, err = s.store.Get(ctx, id)
	s.Equal(ErrDatasetNotFound, err)
	s.Equal(ErrDatasetNotFound, s.store.Delete(ctx, id))
}

func (s *MemoryStoreTestSuite) TestPingAndClose() {
	ctx := context.Background()

	id, err := s.store.Save(ctx, testDataset)
	s.NoError(err)
	s.NoError(s.store.Ping(ctx))

	s.store.Close()
	_, err = s.store.Get(ctx, id)
	s.Equal(ErrDatasetNotFound, err)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, NewMemoryStoreTestSuite())
}
