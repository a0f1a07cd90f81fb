package errors

import "errors"

var (
	ErrUnauthorized            = errors.New("unauthorized")
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrMembershipNotFound      = errors.New("campaign membership not found")
	ErrInvalidCampaignInput    = errors.New("invalid campaign input")
	ErrInvalidMembershipStatus = errors.New("invalid membership status")
	ErrLeadAlreadyInCampaign   = errors.New("lead already in campaign")
	ErrInvalidPage             = errors.New("page and page size must be positive")
)
