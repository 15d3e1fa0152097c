package engagement

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmid42/playtube/backend/internal/models"
)

type edgeKey struct {
	subject uint
	target  Target
}

// fakeRelationStore is an in-memory RelationStore with hook points to force
// the races the engine has to survive.
type fakeRelationStore struct {
	edges map[edgeKey]bool

	createFn func(ctx context.Context, subject uint, target Target) error
	removeFn func(ctx context.Context, subject uint, target Target) error

	calls int
}

func newFakeRelationStore() *fakeRelationStore {
	return &fakeRelationStore{edges: map[edgeKey]bool{}}
}

func (f *fakeRelationStore) Exists(_ context.Context, subject uint, target Target) (bool, error) {
	f.calls++
	return f.edges[edgeKey{subject, target}], nil
}

func (f *fakeRelationStore) Create(ctx context.Context, subject uint, target Target) error {
	f.calls++
	if f.createFn != nil {
		return f.createFn(ctx, subject, target)
	}
	k := edgeKey{subject, target}
	if f.edges[k] {
		return models.ErrAlreadyExists
	}
	f.edges[k] = true
	return nil
}

func (f *fakeRelationStore) Remove(ctx context.Context, subject uint, target Target) error {
	f.calls++
	if f.removeFn != nil {
		return f.removeFn(ctx, subject, target)
	}
	k := edgeKey{subject, target}
	if !f.edges[k] {
		return models.ErrNotFound
	}
	delete(f.edges, k)
	return nil
}

func (f *fakeRelationStore) CountByTarget(_ context.Context, target Target) (int64, error) {
	f.calls++
	var n int64
	for k := range f.edges {
		if k.target == target {
			n++
		}
	}
	return n, nil
}

type fakeCounterStore struct {
	counts   map[Target]int64
	adjustFn func(ctx context.Context, target Target, delta int64) error
	calls    int
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: map[Target]int64{}}
}

func (f *fakeCounterStore) Adjust(ctx context.Context, target Target, delta int64) error {
	f.calls++
	if f.adjustFn != nil {
		return f.adjustFn(ctx, target, delta)
	}
	f.counts[target] += delta
	return nil
}

func (f *fakeCounterStore) Set(_ context.Context, target Target, value int64) error {
	f.calls++
	f.counts[target] = value
	return nil
}

func TestToggleParity(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	target := Target{Kind: TargetVideo, ID: "v1"}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		active, err := engine.Toggle(ctx, 1, target)
		require.NoError(t, err)
		// Odd call count leaves the edge present, even leaves it absent.
		assert.Equal(t, i%2 == 0, active, "toggle #%d", i+1)
	}

	assert.True(t, relations.edges[edgeKey{1, target}])
	assert.Equal(t, int64(1), counters.counts[target])
}

func TestToggleIndependentSubjects(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	target := Target{Kind: TargetVideo, ID: "v1"}
	ctx := context.Background()

	// Interleave toggles from three subjects; each subject's parity and the
	// summed counter must be independent of the interleaving.
	for _, subject := range []uint{1, 2, 3, 2, 1} {
		_, err := engine.Toggle(ctx, subject, target)
		require.NoError(t, err)
	}

	// 1: on,off  2: on,off  3: on
	assert.False(t, relations.edges[edgeKey{1, target}])
	assert.False(t, relations.edges[edgeKey{2, target}])
	assert.True(t, relations.edges[edgeKey{3, target}])
	assert.Equal(t, int64(1), counters.counts[target])
}

func TestToggleSelfSubscriptionRejectedBeforeAnyWrite(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	_, err := engine.Toggle(context.Background(), 42, ChannelTarget(42))
	assert.ErrorIs(t, err, models.ErrSelfSubscription)
	assert.Zero(t, relations.calls)
	assert.Zero(t, counters.calls)
}

func TestToggleSubscribeOtherChannel(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	active, err := engine.Toggle(context.Background(), 42, ChannelTarget(7))
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, int64(1), counters.counts[ChannelTarget(7)])
}

func TestToggleCreateConflictReinterpretedAsRemove(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	target := Target{Kind: TargetTweet, ID: "t1"}

	// Simulate a concurrent toggle sneaking in between the existence check
	// and the create: the unique index rejects our insert.
	relations.createFn = func(_ context.Context, subject uint, tg Target) error {
		relations.edges[edgeKey{subject, tg}] = true // the winner's edge
		return models.ErrAlreadyExists
	}

	active, err := engine.Toggle(context.Background(), 1, target)
	require.NoError(t, err)
	assert.False(t, active, "conflict must resolve as toggle-off")
	assert.False(t, relations.edges[edgeKey{1, target}], "winner's edge removed")
	assert.Equal(t, int64(-1), counters.counts[target], "only the removal was ours to count")
}

func TestToggleRemoveRaceLeavesCounterAlone(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	target := Target{Kind: TargetComment, ID: "c1"}
	relations.edges[edgeKey{1, target}] = true
	relations.removeFn = func(context.Context, uint, Target) error {
		return models.ErrNotFound // a concurrent toggle removed it first
	}

	active, err := engine.Toggle(context.Background(), 1, target)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Zero(t, counters.calls, "the concurrent remover owns the decrement")
}

func TestToggleCounterFailureIsNotFatal(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	target := Target{Kind: TargetVideo, ID: "v1"}
	counters.adjustFn = func(context.Context, Target, int64) error {
		return fmt.Errorf("storage unavailable")
	}

	// The edge write committed; the stale counter is a known, bounded
	// inconsistency that Recompute repairs.
	active, err := engine.Toggle(context.Background(), 1, target)
	require.NoError(t, err)
	assert.True(t, active)
	assert.True(t, relations.edges[edgeKey{1, target}])

	counters.adjustFn = nil
	count, err := engine.Recompute(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(1), counters.counts[target])
}

func TestRecomputeOvercountedCounter(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	target := Target{Kind: TargetVideo, ID: "v1"}
	relations.edges[edgeKey{1, target}] = true
	relations.edges[edgeKey{2, target}] = true
	counters.counts[target] = 9

	count, err := engine.Recompute(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, int64(2), counters.counts[target])
}

func TestToggleSurfacesStoreErrors(t *testing.T) {
	relations := newFakeRelationStore()
	counters := newFakeCounterStore()
	engine := NewEngine(relations, counters)

	boom := errors.New("connection reset")
	relations.createFn = func(context.Context, uint, Target) error { return boom }

	_, err := engine.Toggle(context.Background(), 1, Target{Kind: TargetVideo, ID: "v1"})
	assert.ErrorIs(t, err, boom)
}
