package domain

import (
	"context"
	"fmt"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// Balance splits the session roster into teams and stores the grouping.
// A nil maxImbalance uses the configured default. Concurrent calls for one session share
// a single balancer run.
func (u *Usecase) Balance(ctx context.Context, id string, maxImbalance *int) (entities.BalanceResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id == "" {
		return entities.BalanceResult{}, fmt.Errorf("%w: session_id is required", entities.ErrInvalidArgument)
	}
	threshold := u.defaultMaxImbalance
	if maxImbalance != nil {
		threshold = *maxImbalance
	}
	if threshold < 0 || threshold > entities.MaxImbalanceLimit {
		return entities.BalanceResult{}, fmt.Errorf("%w: max_imbalance must be within [0, %d]",
			entities.ErrInvalidArgument, entities.MaxImbalanceLimit)
	}

	key := fmt.Sprintf("%s/%d", id, threshold)
	v, err, shared := u.flight.Do(key, func() (any, error) {
		return u.balance(ctx, id, threshold)
	})
	if err != nil {
		return entities.BalanceResult{}, err
	}
	if shared {
		u.log.Debugw("balance result shared", "session_id", id)
	}
	return v.(entities.BalanceResult), nil
}

func (u *Usecase) balance(ctx context.Context, id string, threshold int) (entities.BalanceResult, error) {
	var res entities.BalanceResult
	_, err := u.mutate(ctx, id, func(s *entities.Session) error {
		if len(s.Players) != u.RequiredSize() {
			return fmt.Errorf("%w: roster has %d players, need %d",
				entities.ErrInvalidInputSize, len(s.Players), u.RequiredSize())
		}

		var err error
		res, err = u.balancer.Balance(s.Players, threshold)
		if err != nil {
			return err
		}
		if err := u.balancer.VerifyGrouping(s.Players, res.Teams); err != nil {
			return fmt.Errorf("balancer produced an invalid grouping: %v", err)
		}
		s.Teams = res.Teams
		return nil
	})
	if err != nil {
		return entities.BalanceResult{}, err
	}

	if res.Warning != nil {
		u.log.Warnw("imbalance threshold not met",
			"session_id", id,
			"max_imbalance", threshold,
			"achieved_imbalance", res.Warning.AchievedImbalance,
			"attempts", res.Warning.Attempts,
		)
	} else {
		u.log.Infow("teams balanced", "session_id", id, "imbalance", res.Imbalance, "attempts", res.Attempts)
	}
	return res, nil
}
