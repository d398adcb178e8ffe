package feed

import (
	"fmt"
)

// SourceFetchError reports a network, timeout or HTTP status failure for one source.
type SourceFetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *SourceFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// SourceParseError reports a feed document gofeed could not read.
type SourceParseError struct {
	Source string
	Err    error
}

func (e *SourceParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *SourceParseError) Unwrap() error {
	return e.Err
}

// EntryNormalizationError reports a single entry that could not become an Item.
type EntryNormalizationError struct {
	Source string
	Err    error
}

func (e *EntryNormalizationError) Error() string {
	return fmt.Sprintf("normalize entry from %s: %v", e.Source, e.Err)
}

func (e *EntryNormalizationError) Unwrap() error {
	return e.Err
}
