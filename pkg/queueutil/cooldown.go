package queueutil

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/redisutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
)

// CooldownState describes who tripped a cooldown and why. It is stored as
// the value of the cooldown key, so every replica can report it.
type CooldownState struct {
	Reason string    `json:"reason"`
	Host   string    `json:"host"`
	Since  time.Time `json:"since"`
}

// Cooldown is a distributed trip-wire for queues that share one upstream.
// When any replica trips it, all replicas pause admission until the TTL of
// the cooldown key expires.
//
// The key gets written with SetNX, so concurrent trips do not extend an
// already active cooldown. There are no correctness guarantees beyond that;
// the gate is about load shedding, not locking.
type Cooldown struct {
	client redis.UniversalClient
	key    string
}

// NewCooldown creates a cooldown gate on the given key prefix. It satisfies
// the [Gate] interface of the throttled queue.
func NewCooldown(client redis.UniversalClient, prefix redisutil.Prefix) *Cooldown {
	return &Cooldown{
		client: client,
		key:    prefix.Key("cooldown"),
	}
}

// Trip activates the cooldown for the given duration. When multiple replicas
// trip concurrently, the first one wins and the others keep its state.
func (c *Cooldown) Trip(ctx context.Context, reason string, d time.Duration) error {
	hostname, err := os.Hostname()
	if err != nil {
		return errors.Wrap(err, "get hostname")
	}

	payload, err := json.Marshal(CooldownState{
		Reason: reason,
		Host:   hostname,
		Since:  time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "marshal cooldown state")
	}

	err = c.client.SetNX(ctx, c.key, payload, d).Err()
	if err != nil {
		return errors.Wrapf(err, "setnx %#v for cooldown", c.key)
	}

	return nil
}

// Take blocks until no cooldown is active. It polls the TTL of the cooldown
// key and sleeps it out with a little jitter, so the replicas do not resume
// in lockstep.
func (c *Cooldown) Take(ctx context.Context) error {
	for {
		ttl, err := c.client.TTL(ctx, c.key).Result()
		if err != nil {
			return errors.Wrapf(err, "get ttl %#v for cooldown", c.key)
		}

		if ttl <= 0 {
			return nil
		}

		// add jitter of 0% - 5% of the remaining time
		jitter := time.Duration(float64(ttl) / 20. * rand.Float64())

		logutil.Get(ctx).Debug("queue cooldown active",
			"ttl", ttl,
			"jitter", jitter,
		)

		runutil.Wait(ctx, ttl+jitter)

		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "wait for cooldown")
		}
	}
}

// State returns the state recorded when the cooldown got tripped, or nil
// when no cooldown is active.
func (c *Cooldown) State(ctx context.Context) (*CooldownState, error) {
	state, err := redisutil.JSONGet[CooldownState](ctx, c.client, c.key)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %#v for cooldown", c.key)
	}

	return state, nil
}
