// Package source reads the host machine id text from its well-known locations.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
)

// DefaultPaths are tried in order: machine-id(5) first, then the legacy D-Bus copy.
var DefaultPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// ErrNotFound is returned when none of the candidate locations exist.
var ErrNotFound = errors.New("machine id not found")

type Reader struct {
	fs    afs.Service
	paths []string
}

// New returns a Reader over paths (any afs URL). With no paths, DefaultPaths are used.
func New(fs afs.Service, paths ...string) *Reader {
	if fs == nil {
		fs = afs.New()
	}
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	return &Reader{
		fs:    fs,
		paths: append([]string(nil), paths...),
	}
}

// Paths returns the candidate locations in lookup order.
func (r *Reader) Paths() []string {
	return append([]string(nil), r.paths...)
}

// Locate returns the first candidate location that exists.
func (r *Reader) Locate(ctx context.Context) (string, error) {
	for _, p := range r.paths {
		exists, err := r.fs.Exists(ctx, p)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", p, err)
		}
		if exists {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (tried %v)", ErrNotFound, r.paths)
}

// Read returns the raw text of the first existing location. The content is
// not trimmed; validation belongs to machineid.ParseText.
func (r *Reader) Read(ctx context.Context) (string, error) {
	p, err := r.Locate(ctx)
	if err != nil {
		return "", err
	}

	data, err := r.fs.DownloadWithURL(ctx, p)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(data), nil
}
