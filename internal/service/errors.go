package service

import "errors"

var (
	// ErrCyclicDependency is returned when a new dependency would close a cycle.
	ErrCyclicDependency = errors.New("dependency would create a cycle")

	// ErrUnfinishedPrerequisite blocks marking an item done while something it
	// depends on is still open.
	ErrUnfinishedPrerequisite = errors.New("unfinished prerequisite")

	// ErrInvalidChange rejects a change intent that would break an item's
	// structural rules.
	ErrInvalidChange = errors.New("invalid change")
)
