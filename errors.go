package mnist_go

import (
	"github.com/pkg/errors"
)

// Errors of decode/assembly stage. Fetch errors are whatever the Fetcher
// returns, wrapped with context but never replaced by one of these.
var (
	// ErrMalformedHeader Header byte count is not a positive multiple of 4 or exceeds the file length
	ErrMalformedHeader = errors.New("malformed record file header")
	// ErrMalformedRecordStream Bytes after the header do not form a whole number of records
	ErrMalformedRecordStream = errors.New("record stream has trailing bytes")
	// ErrRecordCountMismatch Image and label files of one split disagree on record count
	ErrRecordCountMismatch = errors.New("image and label record counts differ")
	// ErrLabelOutOfRange Decoded label is not a valid class index
	ErrLabelOutOfRange = errors.New("label is out of class range")
	// ErrNotLoaded Dataset has not been populated by a successful Load yet
	ErrNotLoaded = errors.New("dataset is not loaded")
)
