package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrEmptyFrequencies is returned when a codec is built from an empty frequency table
	ErrEmptyFrequencies = errors.New("empty frequency table")

	// ErrUnknownToken is returned when a strict encode is called with a token absent from the codebook
	ErrUnknownToken = errors.New("unknown token")

	// ErrIndexNotFound is returned when an index is not found
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexAlreadyExists is returned when trying to create an index that already exists
	ErrIndexAlreadyExists = errors.New("index already exists")

	// ErrColumnNotFound is returned when the configured column appears in no row of the store
	ErrColumnNotFound = errors.New("column not found")

	// ErrKeyCollision is returned when two distinct codes map to the same tree key
	ErrKeyCollision = errors.New("key collision")

	// ErrRowNotFound is returned when a row id has no row in the store
	ErrRowNotFound = errors.New("row not found")
)

// UnknownTokenError represents an unknown token error with context
type UnknownTokenError struct {
	Token string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("token '%s' is not in the codebook", e.Token)
}

func (e *UnknownTokenError) Is(target error) bool {
	return target == ErrUnknownToken
}

// NewUnknownTokenError creates a new UnknownTokenError
func NewUnknownTokenError(token string) *UnknownTokenError {
	return &UnknownTokenError{Token: token}
}

// IndexNotFoundError represents an index not found error with context
type IndexNotFoundError struct {
	IndexName string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index named '%s' not found", e.IndexName)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// NewIndexNotFoundError creates a new IndexNotFoundError
func NewIndexNotFoundError(indexName string) *IndexNotFoundError {
	return &IndexNotFoundError{IndexName: indexName}
}

// IndexAlreadyExistsError represents an index already exists error with context
type IndexAlreadyExistsError struct {
	IndexName string
}

func (e *IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index named '%s' already exists", e.IndexName)
}

func (e *IndexAlreadyExistsError) Is(target error) bool {
	return target == ErrIndexAlreadyExists
}

// NewIndexAlreadyExistsError creates a new IndexAlreadyExistsError
func NewIndexAlreadyExistsError(indexName string) *IndexAlreadyExistsError {
	return &IndexAlreadyExistsError{IndexName: indexName}
}

// ColumnNotFoundError represents a column not found error with context
type ColumnNotFoundError struct {
	Column    string
	IndexName string
}

func (e *ColumnNotFoundError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("column '%s' for index '%s' not found in any row", e.Column, e.IndexName)
	}
	return fmt.Sprintf("column '%s' not found in any row", e.Column)
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// NewColumnNotFoundError creates a new ColumnNotFoundError
func NewColumnNotFoundError(column string, indexName ...string) *ColumnNotFoundError {
	err := &ColumnNotFoundError{Column: column}
	if len(indexName) > 0 {
		err.IndexName = indexName[0]
	}
	return err
}

// KeyCollisionError reports that two distinct codes mapped to the same tree
// key. The code-to-key mapping falls back to a hash for codes longer than 63
// bits, and that fallback is not collision-free; without this check the
// postings of two unrelated tokens would silently merge under one key.
type KeyCollisionError struct {
	Key          int64
	ExistingCode string
	NewCode      string
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("codes '%s' and '%s' both map to key %d", e.ExistingCode, e.NewCode, e.Key)
}

func (e *KeyCollisionError) Is(target error) bool {
	return target == ErrKeyCollision
}

// NewKeyCollisionError creates a new KeyCollisionError
func NewKeyCollisionError(key int64, existingCode, newCode string) *KeyCollisionError {
	return &KeyCollisionError{Key: key, ExistingCode: existingCode, NewCode: newCode}
}
