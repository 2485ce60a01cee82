package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongPassword is returned when the decrypted key block does not
	// parse or its keys are inconsistent. Without a MAC this is the only
	// evidence of a wrong password.
	ErrWrongPassword = errors.New("wrong password")

	// ErrMalformedEnvelope is returned when the outer container cannot be
	// read, independent of the password.
	ErrMalformedEnvelope = errors.New("malformed wallet file")

	// ErrCorruptedDetails is returned when the keys verify but the
	// transaction history or cache blob that follow them do not decode.
	ErrCorruptedDetails = errors.New("wallet details are corrupted")
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file is not empty: %s", e.Path)
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}
