package storage

import (
	"errors"
	"fmt"
)

const (
	RunsTable = "runs"
)

// DefaultDir is the root of the file storage.
const DefaultDir = "file-storage"

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

// Key is the storage key of a run artifact.
type Key struct {
	Run   string `json:"run"`
	Label string `json:"label"`
}

// Path is the file name of the key.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%s", k.Run, k.Label)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
