// Package pkg provides shared utilities for unwrapaudit.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Spool is a disk-backed append-only buffer for items of type T. Scan
// workers append findings concurrently; the aggregator drains them with
// Range once the scan completes.
type Spool[T any] interface {
	Len() uint64
	Append(item T) error
	AppendBatch(items []T) error
	Range(f func(index uint64, item T) error) error
	Close() error
}

type spoolImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewSpool creates a Spool backed by a temporary file.
func NewSpool[T any]() (Spool[T], error) {
	file, err := os.CreateTemp("", "unwrapaudit-spool-*.gob")
	if err != nil {
		slog.Error("failed to create spool file", "error", err)
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	slog.Debug("created spool", "path", file.Name())

	return &spoolImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append implements Spool.
func (s *spoolImpl[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	s.length++

	return nil
}

// AppendBatch implements Spool.
func (s *spoolImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Len implements Spool.
func (s *spoolImpl[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Range implements Spool.
func (s *spoolImpl[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		slog.Error("failed to open spool for range", "path", s.path, "error", err)
		return fmt.Errorf("failed to open spool: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spool", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := uint64(0); i < s.length; i++ {
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", s.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements Spool. The backing file is removed.
func (s *spoolImpl[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			slog.Error("failed to close spool file", "path", s.path, "error", err)
			return err
		}

		s.file = nil
	}

	return os.Remove(s.path)
}
