package model

import "errors"

// RejectedActionError is reported to the initiating connection only. The table is left untouched.
type RejectedActionError struct {
	msg string
}

func (e *RejectedActionError) Error() string {
	return e.msg
}

func Reject(msg string) error {
	return &RejectedActionError{msg: msg}
}

func IsRejected(err error) bool {
	var rejected *RejectedActionError
	return errors.As(err, &rejected)
}

var (
	ErrWrongPhase         = Reject("table: action not allowed in current phase")
	ErrNotYourTurn        = Reject("table: not your turn")
	ErrNotCroupier        = Reject("table: only the croupier can do that")
	ErrPlayerNotFound     = Reject("table: player not found")
	ErrPlayerAlreadyIn    = Reject("table: player already at table")
	ErrInsufficientChips  = Reject("table: insufficient chips")
	ErrInvalidAmount      = Reject("table: invalid bet amount")
	ErrInvalidBetType     = Reject("table: invalid bet type")
	ErrAlreadyBet         = Reject("table: bet already placed this round")
	ErrNoReadyPlayers     = Reject("table: no ready players")
	ErrNotEnoughPlayers   = Reject("table: not enough players")
	ErrTableFull          = Reject("table: no empty seats available")
	ErrRoundInProgress    = Reject("table: round in progress")
	ErrTableNotFound      = Reject("table: table not found")
	ErrUnknownAction      = Reject("table: unknown action")
	ErrCannotCheck        = Reject("table: cannot check, bet to call")
	ErrCannotDoubleDown   = Reject("table: double down requires exactly two cards")
	ErrBettingInProgress  = Reject("table: betting round not complete")
	ErrAlreadySeated      = Reject("session: connection already at a table")
	ErrNotSeated          = Reject("session: connection is not at a table")
	ErrInvalidGameType    = Reject("session: invalid game type")
	ErrCroupierCannotPlay = Reject("table: croupier cannot join as player")
	ErrMissingAction      = Reject("request: missing action")
	ErrForbiddenAction    = Reject("request: action not allowed")
)
