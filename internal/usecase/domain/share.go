package domain

import (
	"context"
	"fmt"

	"github.com/good-enough-software/team-builder/internal/entities"
)

// Share builds a view link for the session roster or grouping.
func (u *Usecase) Share(ctx context.Context, id string, opts entities.ShareOptions) (entities.ShareLink, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	s, err := u.Session(ctx, id)
	if err != nil {
		return entities.ShareLink{}, err
	}
	if opts.RosterOnly && len(s.Players) == 0 {
		return entities.ShareLink{}, fmt.Errorf("%w: roster is empty", entities.ErrInvalidArgument)
	}
	if !opts.RosterOnly && len(s.Teams) == 0 {
		return entities.ShareLink{}, fmt.Errorf("%w: no teams to share", entities.ErrInvalidArgument)
	}

	long, err := u.codec.Encode(u.codec.Payload(s.Players, s.Teams, opts), opts.Format)
	if err != nil {
		return entities.ShareLink{}, err
	}

	link := entities.ShareLink{URL: long, LongURL: long}
	if opts.Shorten && u.shortener != nil {
		link.URL = u.shortener.Shorten(ctx, long)
	}
	u.log.Infow("share link built", "session_id", id, "format", opts.Format, "roster_only", opts.RosterOnly, "shortened", link.URL != long)
	return link, nil
}

// View decodes a view link into its read-only payload.
func (u *Usecase) View(_ context.Context, link string) (entities.SharePayload, error) {
	p, err := u.codec.Decode(link)
	if err != nil {
		u.log.Infow("rejected view link", "error", err)
		return entities.SharePayload{}, err
	}
	return p, nil
}

// Import replaces the session roster and grouping with the content of a view link.
func (u *Usecase) Import(ctx context.Context, id, link string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.View(ctx, link)
	if err != nil {
		return nil, err
	}

	roster := p.Roster()
	if len(p.Teams) > 0 {
		if err := u.balancer.VerifyGrouping(roster, p.Teams); err != nil {
			return nil, fmt.Errorf("%w: %v", entities.ErrInvalidShareData, err)
		}
	}

	return u.mutate(ctx, id, func(s *entities.Session) error {
		s.Players = roster
		s.Teams = p.Teams
		if s.Teams == nil {
			s.ClearTeams()
		}
		u.log.Infow("view link imported", "session_id", id, "players", len(s.Players), "teams", len(s.Teams))
		return nil
	})
}
