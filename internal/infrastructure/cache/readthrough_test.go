package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type catalogEntry struct {
	Name string `json:"name"`
}

type ReadThroughTestSuite struct {
	suite.Suite
	store *MemoryStore
	rt    *ReadThrough[[]catalogEntry]
	ctx   context.Context
}

func (s *ReadThroughTestSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.rt = NewReadThrough[[]catalogEntry](s.store, zap.NewNop(), time.Minute)
	s.ctx = context.Background()
}

func (s *ReadThroughTestSuite) TestMissFetchesAndStores() {
	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]catalogEntry, error) {
		calls.Add(1)
		return []catalogEntry{{Name: "Pão sem glúten"}}, nil
	}

	got, err := s.rt.Get(s.ctx, KeyRecipes(), fetch)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Pão sem glúten", got[0].Name)
	s.Equal(int32(1), calls.Load())

	cached, err := s.store.Get(s.ctx, KeyRecipes())
	s.Require().NoError(err)
	var stored []catalogEntry
	s.Require().NoError(json.Unmarshal(cached, &stored))
	s.Equal(got, stored)
}

func (s *ReadThroughTestSuite) TestHitServesCachedWhenFetchFails() {
	seed, _ := json.Marshal([]catalogEntry{{Name: "Bolo de cenoura"}})
	s.Require().NoError(s.store.Set(s.ctx, KeyRecipes(), seed, time.Minute))

	fetch := func(ctx context.Context) ([]catalogEntry, error) {
		return nil, errors.New("database down")
	}

	got, err := s.rt.Get(s.ctx, KeyRecipes(), fetch)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Bolo de cenoura", got[0].Name)

	// The failed background refresh must not clear the entry.
	s.Eventually(func() bool {
		_, err := s.store.Get(s.ctx, KeyRecipes())
		return err == nil
	}, time.Second, 10*time.Millisecond)
}

func (s *ReadThroughTestSuite) TestHitTriggersBackgroundRefresh() {
	seed, _ := json.Marshal([]catalogEntry{{Name: "stale"}})
	s.Require().NoError(s.store.Set(s.ctx, KeyCategories(), seed, time.Minute))

	fetch := func(ctx context.Context) ([]catalogEntry, error) {
		return []catalogEntry{{Name: "fresh"}}, nil
	}

	got, err := s.rt.Get(s.ctx, KeyCategories(), fetch)
	s.Require().NoError(err)
	s.Equal("stale", got[0].Name)

	s.Eventually(func() bool {
		data, err := s.store.Get(s.ctx, KeyCategories())
		if err != nil {
			return false
		}
		var entries []catalogEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return false
		}
		return len(entries) == 1 && entries[0].Name == "fresh"
	}, time.Second, 10*time.Millisecond)
}

func (s *ReadThroughTestSuite) TestMissPropagatesFetchError() {
	fetch := func(ctx context.Context) ([]catalogEntry, error) {
		return nil, errors.New("database down")
	}

	_, err := s.rt.Get(s.ctx, KeyRecipes(), fetch)
	s.Error(err)
}

func (s *ReadThroughTestSuite) TestInvalidateForcesRefetch() {
	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]catalogEntry, error) {
		calls.Add(1)
		return []catalogEntry{{Name: "Torta"}}, nil
	}

	_, err := s.rt.Get(s.ctx, KeyRecipes(), fetch)
	s.Require().NoError(err)

	s.rt.Invalidate(s.ctx, KeyRecipes())

	_, err = s.rt.Get(s.ctx, KeyRecipes(), fetch)
	s.Require().NoError(err)
	s.Equal(int32(2), calls.Load())
}

func (s *ReadThroughTestSuite) TestMemoryStoreCloseIsIdempotent() {
	store := NewMemoryStore()
	s.Require().NoError(store.Set(s.ctx, "k", []byte(`"v"`), time.Minute))

	store.Close()
	store.Close()

	// A closed store still serves reads and writes; only the
	// eviction goroutine stops.
	value, err := store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal([]byte(`"v"`), value)
}

func TestReadThroughTestSuite(t *testing.T) {
	suite.Run(t, new(ReadThroughTestSuite))
}
