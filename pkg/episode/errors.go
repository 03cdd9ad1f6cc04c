package episode

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord matches any *MalformedRecordError.
	ErrMalformedRecord = errors.New("malformed episode record")
	// ErrNoEpisodes is returned by Load when no file produced an episode.
	ErrNoEpisodes = errors.New("no episodes loaded")
	// ErrUnknownField is returned by Search for an unsupported field.
	ErrUnknownField = errors.New("unknown search field")
)

// MalformedRecordError describes an episode file that could not be turned
// into an episode.
type MalformedRecordError struct {
	Source string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("malformed episode record: %v", e.Err)
	}
	return fmt.Sprintf("malformed episode record %s: %v", e.Source, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
