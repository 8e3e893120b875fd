package trash

import "errors"

// Common errors that can be returned by trash operations
var (
	// ErrPathNotFound is returned when the path to be trashed does not exist
	ErrPathNotFound = errors.New("no such file or directory")

	// ErrOverwriteRefused is returned when an operation would replace an existing file
	ErrOverwriteRefused = errors.New("will not overwrite existing file")

	// ErrEntryNotFound is returned when no trash entry matches the request
	ErrEntryNotFound = errors.New("file not found in trash")

	// ErrMetadataCorrupt is returned when a .trashinfo record cannot be decoded
	ErrMetadataCorrupt = errors.New("trash info is corrupted")

	// ErrIOFailure is returned when the underlying filesystem call fails
	ErrIOFailure = errors.New("i/o failure")

	// ErrHomeDirUnresolvable is returned when the user's home directory cannot be found
	ErrHomeDirUnresolvable = errors.New("unable to get home directory")

	// ErrRestoreFailed is returned when a content entry could not be moved back
	ErrRestoreFailed = errors.New("restore failed")

	// ErrRollbackFailed is returned when a partially applied put could not be undone
	ErrRollbackFailed = errors.New("rollback failed")

	// ErrTrashMissing is returned when the trash was removed but could not be recreated
	ErrTrashMissing = errors.New("trash directory is missing")
)

// StorageError wraps an error with additional context about the trash operation
type StorageError struct {
	Op   string // Operation that failed (e.g., "put", "restore", "empty")
	Path string // Path of the file that caused the error
	Err  error  // The underlying error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, path string, err error) error {
	return &StorageError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsPathNotFound returns true if the error is ErrPathNotFound
func IsPathNotFound(err error) bool {
	return errors.Is(err, ErrPathNotFound)
}

// IsOverwriteRefused returns true if the error is ErrOverwriteRefused
func IsOverwriteRefused(err error) bool {
	return errors.Is(err, ErrOverwriteRefused)
}

// IsEntryNotFound returns true if the error is ErrEntryNotFound
func IsEntryNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound)
}

// IsMetadataCorrupt returns true if the error is ErrMetadataCorrupt
func IsMetadataCorrupt(err error) bool {
	return errors.Is(err, ErrMetadataCorrupt)
}

// IsFatal reports whether the error leaves the trash in a state that
// needs attention before the next run
func IsFatal(err error) bool {
	return errors.Is(err, ErrHomeDirUnresolvable) ||
		errors.Is(err, ErrRollbackFailed) ||
		errors.Is(err, ErrTrashMissing)
}
