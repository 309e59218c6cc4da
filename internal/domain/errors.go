package domain

import "errors"

var (
	ErrEmptyRoomID   = errors.New("room id empty")
	ErrEmptyPlayerID = errors.New("player id empty")
	ErrEmptyName     = errors.New("name empty")
	ErrNameTooLong   = errors.New("name too long")

	ErrRoomNotFound    = errors.New("room not found")
	ErrFeatureNotFound = errors.New("feature not found")
	ErrStoryNotFound   = errors.New("story not found")
	ErrPlayerNotFound  = errors.New("player not found")

	ErrVotingLocked    = errors.New("estimation finished, voting locked")
	ErrScrumMasterVote = errors.New("scrum master does not vote")
	ErrNegativeScore   = errors.New("score must be non-negative")
)
