package machineid

import "errors"

var (
	// ErrInvalidLength is returned by Derive when an input is not 16 bytes.
	ErrInvalidLength = errors.New("invalid id length")

	// ErrMalformedMachineID is returned when machine id text does not match machine-id(5).
	ErrMalformedMachineID = errors.New("malformed machine id")

	// ErrInvalidAppID is returned when an application id is not a valid UUID.
	ErrInvalidAppID = errors.New("invalid application id")
)
