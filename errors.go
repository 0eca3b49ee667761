package gaddag

import (
	"errors"
	"fmt"
)

var (
	// ErrInputUnavailable means the word list could not be opened.
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrUnencodableWord means a token contains text outside the alphabet.
	ErrUnencodableWord = errors.New("unencodable word")

	// ErrInternalInvariant means a stage received input that earlier stages
	// should have made impossible.
	ErrInternalInvariant = errors.New("internal invariant violated")

	// ErrUnsupportedVersion is returned for index format versions other than 1 and 2.
	ErrUnsupportedVersion = errors.New("unsupported index version")

	// ErrBadMagic means the data does not start with an index header.
	ErrBadMagic = errors.New("bad index magic")

	// ErrCorruptIndex means the index data is truncated or inconsistent.
	ErrCorruptIndex = errors.New("corrupt index")
)

// UnencodableWordError is returned by Factory.PushWord for a token that
// cannot be encoded. It matches both ErrUnencodableWord and the alphabet's
// own error.
type UnencodableWordError struct {
	Word string
	Err  error
}

func (e *UnencodableWordError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrUnencodableWord, e.Word, e.Err)
}

func (e *UnencodableWordError) Unwrap() []error {
	return []error{ErrUnencodableWord, e.Err}
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternalInvariant, fmt.Sprintf(format, args...))
}
