package engine

import "errors"

var (
	// ErrNotInitialized indicates use of an engine before Init.
	ErrNotInitialized = errors.New("engine: query not initialized")

	// ErrNotStarted indicates a stroke before Start.
	ErrNotStarted = errors.New("engine: typing not started")

	// ErrAlreadyStarted indicates Init on a started engine.
	ErrAlreadyStarted = errors.New("engine: typing already started")

	// ErrFinished indicates a stroke after the query was completed.
	ErrFinished = errors.New("engine: query already finished")

	// ErrNotFinished indicates a result request before completion.
	ErrNotFinished = errors.New("engine: query not finished")
)
