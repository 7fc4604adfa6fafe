package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxKeyLength bounds definition keys accepted from external input.
const maxKeyLength = 256

// ValidatePath validates a local file path argument.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Absolute paths and ".." are allowed; the user names files on their own
// machine.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateDefinitionKey validates a definition key received from a client.
//
// Keys need not exist in the document (drilling into a dangling key is
// allowed), but they must be non-empty, reasonably short, and free of
// control characters.
func ValidateDefinitionKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidKey, "definition key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "definition key too long (max %d characters)", maxKeyLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "definition key contains invalid control characters")
		}
	}
	return nil
}

// ValidateSessionID checks that id is a UUID as issued by the session store.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed session id %q", id)
	}
	return nil
}
