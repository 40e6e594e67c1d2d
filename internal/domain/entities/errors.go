package entities

import "errors"

// Domain errors
var (
	ErrContributorNotFound      = errors.New("contributor not found")
	ErrContributorAlreadyExists = errors.New("contributor already exists")
	ErrInvalidContributorName   = errors.New("contributor name must contain only lowercase letters, digits and underscore")
	ErrInvalidDisplayName       = errors.New("display name is required")
	ErrSnapshotNotFound         = errors.New("session snapshot not found")
	ErrInvalidSnapshot          = errors.New("session snapshot is invalid")
)

// Storage errors
var (
	ErrBlobNotFound = errors.New("blob not found")
)
