// Package engagement implements the toggleable-relation engine behind likes
// and subscriptions: flipping the presence of an edge row while keeping the
// denormalized counter on the target in step.
package engagement

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/tahmid42/playtube/backend/internal/models"
)

// TargetKind identifies what a relation edge points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
	TargetChannel TargetKind = "channel"
)

// Target is the object side of a relation edge. For channels the ID is the
// decimal user ID; for content it is the Mongo ObjectID hex.
type Target struct {
	Kind TargetKind
	ID   string
}

// ChannelTarget builds a subscription target from a user ID.
func ChannelTarget(userID uint) Target {
	return Target{Kind: TargetChannel, ID: strconv.FormatUint(uint64(userID), 10)}
}

// RelationStore persists relation edges. Create must fail with
// models.ErrAlreadyExists when the edge is present (backed by a storage-level
// unique constraint, so concurrent creates race safely), and Remove with
// models.ErrNotFound when it is absent.
type RelationStore interface {
	Exists(ctx context.Context, subject uint, target Target) (bool, error)
	Create(ctx context.Context, subject uint, target Target) error
	Remove(ctx context.Context, subject uint, target Target) error
	CountByTarget(ctx context.Context, target Target) (int64, error)
}

// CounterStore adjusts the cached engagement counter on a target entity.
// Adjust must be atomic at the storage layer; Set overwrites the counter and
// exists for reconciliation only.
type CounterStore interface {
	Adjust(ctx context.Context, target Target, delta int64) error
	Set(ctx context.Context, target Target, value int64) error
}

// Engine orchestrates check-then-flip toggles over a RelationStore and a
// CounterStore.
type Engine struct {
	relations RelationStore
	counters  CounterStore
}

// NewEngine creates a new Engine
func NewEngine(relations RelationStore, counters CounterStore) *Engine {
	return &Engine{relations: relations, counters: counters}
}

// Toggle flips the (subject, target) edge and returns whether it is now
// active. The existence check and the write are two separate storage calls;
// the unique constraint in the relation store is the real arbiter. When a
// create loses the race to a concurrent toggle, the conflict is reinterpreted
// as "someone else turned it on first" and this call turns it off instead
// (last write wins).
//
// Callers must verify the target entity exists beforehand; the engine only
// rejects self-subscription itself, before any storage write.
func (e *Engine) Toggle(ctx context.Context, subject uint, target Target) (bool, error) {
	if target.Kind == TargetChannel && target.ID == strconv.FormatUint(uint64(subject), 10) {
		return false, models.ErrSelfSubscription
	}

	exists, err := e.relations.Exists(ctx, subject, target)
	if err != nil {
		return false, err
	}
	if exists {
		return false, e.turnOff(ctx, subject, target)
	}

	if err := e.relations.Create(ctx, subject, target); err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			return false, e.turnOff(ctx, subject, target)
		}
		return false, err
	}
	e.adjust(ctx, target, 1)
	return true, nil
}

func (e *Engine) turnOff(ctx context.Context, subject uint, target Target) error {
	if err := e.relations.Remove(ctx, subject, target); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// A concurrent toggle already removed the edge; its removal owns
			// the counter decrement, so nothing to do here.
			return nil
		}
		return err
	}
	e.adjust(ctx, target, -1)
	return nil
}

// adjust applies the compensating counter delta. The edge write has already
// committed at this point, so a failure here is logged and left for
// Recompute rather than rolled back.
func (e *Engine) adjust(ctx context.Context, target Target, delta int64) {
	if err := e.counters.Adjust(ctx, target, delta); err != nil {
		log.Printf("counter adjust failed for %s %s (delta %+d), counter stale until recompute: %v",
			target.Kind, target.ID, delta, err)
	}
}

// Recompute sets the target's cached counter to the true count of relation
// edges and returns it. The cached counter is an optimization, never the
// source of truth; this is the out-of-band remedy for counters left stale by
// a crash or a failed adjust.
func (e *Engine) Recompute(ctx context.Context, target Target) (int64, error) {
	count, err := e.relations.CountByTarget(ctx, target)
	if err != nil {
		return 0, err
	}
	if err := e.counters.Set(ctx, target, count); err != nil {
		return 0, err
	}
	return count, nil
}
