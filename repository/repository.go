package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateKey is returned when an insert violates a unique index.
// Callers rely on it to turn a concurrent duplicate insert into an
// idempotent outcome instead of a generic storage error.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = mongo.ErrNoDocuments

// translateErr maps driver errors onto the repository sentinels.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
