package bracket

import "errors"

var (
	ErrInvalidRoster        = errors.New("invalid roster")
	ErrInvalidFormat        = errors.New("invalid format")
	ErrMatchNotFound        = errors.New("match not found")
	ErrIncompleteMatch      = errors.New("match has no decisive winner yet")
	ErrInvalidScore         = errors.New("invalid game score")
	ErrSchedulingInfeasible = errors.New("not every match fits before the end of the day")

	ErrMatchNotReady       = errors.New("match does not have two teams yet")
	ErrMatchCompleted      = errors.New("match is already completed")
	ErrBracketNotFound     = errors.New("bracket not found")
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrCourtNotFound       = errors.New("court not found")
	ErrPoolNotFound        = errors.New("pool not found")
	ErrPoolIncomplete      = errors.New("pool still has matches to play")
	ErrPlaceholderNotFound = errors.New("playoff placeholder not found")
	ErrPlaceholderBound    = errors.New("playoff placeholder is already bound")
	ErrNoChampion          = errors.New("bracket has no champion")
)
