package events

import (
	"context"
	"encoding/json"

	"peerlend-backend/internal/usecase/loan"

	"github.com/redis/go-redis/v9"
)

// LoanRepaidChannel carries repaid-loan notifications for out-of-band
// subscribers (notifiers, audit). Delivery is fire-and-forget: the
// registry state is already committed when a message goes out.
const LoanRepaidChannel = "loans.repaid"

type RedisPublisher struct{ rdb *redis.Client }

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher { return &RedisPublisher{rdb: rdb} }

func (p *RedisPublisher) LoanRepaid(ctx context.Context, ev loan.RepaidEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, LoanRepaidChannel, payload).Err()
}
