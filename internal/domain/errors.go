package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrDialogflowFailure is returned when a Dialogflow API request fails
	ErrDialogflowFailure = errors.New("dialogflow API request failed")

	// ErrMissingCredentials is returned when no Google credentials can be resolved
	ErrMissingCredentials = errors.New("google credentials not configured")

	// ErrEmptyResponse is returned when the agent reply carries no query result
	ErrEmptyResponse = errors.New("empty dialogflow response")
)
