package core

import "errors"

// Common errors. Input validation errors are returned before any
// filesystem mutation happens.
var (
	ErrEmptyParticipantID = errors.New("participant id cannot be empty")
	ErrNoQuestionnaires   = errors.New("no questionnaires configured")
	ErrFolderNotFound     = errors.New("participant folder not found")
	ErrNoExtracts         = errors.New("no extract data files found in participant folder")
)
