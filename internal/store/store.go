package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Store is the process-wide handle to the relational store. A Store is
// always usable: when connection parameters were absent or the initial
// connect failed, every operation fails with a descriptive error instead
// of the process terminating.
type Store struct {
	db  *gorm.DB
	err error
}

// Connector opens a gorm connection; split out so Open can be exercised
// without a running server.
type Connector func(host string, port int, user, password, name string) (*gorm.DB, error)

// Open connects to the store described by the arguments. Missing
// parameters or a failed connect degrade the handle rather than
// returning an error; the condition is logged once here.
func Open(connect Connector, host string, port int, user, password, name string) *Store {
	var missing []string
	if host == "" {
		missing = append(missing, "host")
	}
	if name == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		err := &ConfigurationError{Missing: missing}
		log.Printf("store: %v; data operations will fail until configured", err)
		return &Store{err: err}
	}

	db, err := connect(host, port, user, password, name)
	if err != nil {
		log.Printf("store: connect failed: %v; data operations will fail", err)
		return &Store{err: Wrap("store: connect", err)}
	}
	return &Store{db: db}
}

// FromDB wraps an existing gorm connection, used by tests and by
// callers that manage the connection themselves.
func FromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Degraded returns a handle that fails every operation with err.
func Degraded(err error) *Store {
	return &Store{err: err}
}

// DB returns the underlying connection, or the degradation error
// captured at open time.
func (s *Store) DB() (*gorm.DB, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.db == nil {
		return nil, Wrap("store", fmt.Errorf("no connection"))
	}
	return s.db, nil
}

// Ready reports whether the handle has a live connection.
func (s *Store) Ready() bool {
	return s.err == nil && s.db != nil
}

// NewID creates a unique row ID with the given prefix, e.g. proj-1f2e3d4c.
func NewID(prefix string) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("store: generate ID: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b), nil
}
