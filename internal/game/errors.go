package game

import "errors"

var (
	ErrEmptyPool     = errors.New("card pool is empty")
	ErrNoEnemies     = errors.New("battle needs at least one enemy")
	ErrNotStarted    = errors.New("battle not started")
	ErrBattleOver    = errors.New("battle is over")
	ErrPaused        = errors.New("battle is paused")
	ErrNotPaused     = errors.New("battle is not paused")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrUnknownStat   = errors.New("unknown stat")
	ErrPoolExhausted = errors.New("deck and discard are empty and the pool cannot be regenerated")
	ErrUnknownCard   = errors.New("unknown card")
)
