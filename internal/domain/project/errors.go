package project

import "errors"

var (
	ErrProjectNotFound = errors.New("Project not found")
	ErrNotInProject    = errors.New("You are not in project")
	ErrAlreadyMember   = errors.New("User is already a project member")
)
