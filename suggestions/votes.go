package suggestions

import (
	"context"
	"errors"
	"fmt"

	"midway/models"
	"midway/utils"
)

// voteRetries bounds how often a vote write is retried after losing a
// revision race before the conflict is surfaced to the caller.
const voteRetries = 3

// CastVote applies the toggle state machine for one participant on one venue
// and returns the venue's updated tally. Repeating a direction retracts the
// vote; the opposite direction switches it.
//
// The read-modify-write runs against the venue's revision: a concurrent
// voter bumping the revision first forces a re-read, so no vote is ever
// computed from a stale snapshot.
func (l *Ledger) CastVote(ctx context.Context, eventID, venueID, userID string, dir models.VoteDirection) (models.VoteTally, error) {
	if dir != models.VoteUp && dir != models.VoteDown {
		return models.VoteTally{}, fmt.Errorf("invalid vote direction %q", dir)
	}

	event, err := l.events.Get(ctx, eventID)
	if err != nil {
		return models.VoteTally{}, err
	}
	if !event.Attendee(userID) {
		return models.VoteTally{}, ErrForbidden
	}

	for attempt := 0; attempt < voteRetries; attempt++ {
		venue, err := l.store.Get(ctx, eventID, venueID)
		if err != nil {
			return models.VoteTally{}, err
		}

		votes := make(map[string]models.VoteDirection, len(venue.Votes))
		for k, v := range venue.Votes {
			votes[k] = v
		}

		switch votes[userID] {
		case dir:
			delete(votes, userID) // retract
		default:
			votes[userID] = dir // first vote or switch
		}

		err = l.store.CompareAndSetVotes(ctx, eventID, venueID, venue.Rev, votes)
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return models.VoteTally{}, err
		}

		venue.Votes = votes
		tally := venue.Tally()

		l.broadcast(eventID, utils.M{
			"action":  "vote_update",
			"venueid": venueID,
			"tally":   tally,
		})
		return tally, nil
	}

	return models.VoteTally{}, ErrConflict
}
