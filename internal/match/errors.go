package match

import "errors"

// Scoring errors. The controller maps these onto HTTP statuses; every
// operation either fully applies or rejects with one of them.
var (
	// ErrInvalidState covers any operation attempted outside the match
	// status it requires, such as scoring a completed match.
	ErrInvalidState = errors.New("operation not allowed in the match's current state")

	// ErrInvalidParticipant covers team IDs that are not part of the match.
	ErrInvalidParticipant = errors.New("team is not a participant in this match")

	ErrInvalidBatsman = errors.New("player is not an eligible batsman for the batting team")
	ErrInvalidBowler  = errors.New("player is not on the bowling team's roster")

	// ErrPlayersNotSet rejects scoring before both batsmen and a bowler
	// are assigned for the current over.
	ErrPlayersNotSet = errors.New("batsmen and bowler must be set before scoring")

	ErrEmptyRoster = errors.New("team roster is empty")

	ErrAllOut         = errors.New("batting team is all out")
	ErrOversExhausted = errors.New("overs for the innings are exhausted")

	// ErrStaleSequence rejects a delivery whose client sequence number does
	// not match the server's ball count, catching duplicate submissions.
	ErrStaleSequence = errors.New("ball sequence number does not match the current state")

	ErrInvalidRuns = errors.New("runs must be between 0 and 6")

	ErrNotFound = errors.New("match not found")
)
