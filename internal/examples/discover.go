package examples

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDirNotFound is returned when the examples directory does not exist.
var ErrDirNotFound = errors.New("examples directory does not exist")

// Order selects the iteration order of discovered examples.
type Order string

const (
	// OrderName sorts examples lexicographically by file name.
	OrderName Order = "name"
	// OrderListing keeps whatever order the filesystem listing yields.
	OrderListing Order = "listing"
)

// Valid reports whether o is a known order.
func (o Order) Valid() bool {
	return o == OrderName || o == OrderListing
}

// Example is a single discovered example source.
type Example struct {
	Name     string // identifier passed to the build tool
	FileName string
	Path     string
}

// Matches reports whether name identifies an example for suffix. A name equal
// to the suffix matches and yields an empty identifier.
func Matches(name, suffix string) bool {
	return suffix != "" && strings.HasSuffix(name, suffix)
}

// Identifier strips suffix from name.
func Identifier(name, suffix string) string {
	return strings.TrimSuffix(name, suffix)
}

// Filter returns the names ending with suffix, preserving input order.
func Filter(names []string, suffix string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if Matches(n, suffix) {
			out = append(out, n)
		}
	}
	return out
}

// Exists reports whether dir exists. Errors other than not-exist are returned.
func Exists(dir string) (bool, error) {
	_, err := os.Stat(dir)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Discover lists dir and returns the examples matching suffix in the given order.
func Discover(dir, suffix string, order Order) ([]Example, error) {
	ok, err := Exists(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	names, err := listNames(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if order != OrderListing {
		sort.Strings(names)
	}

	matched := Filter(names, suffix)
	out := make([]Example, 0, len(matched))
	for _, n := range matched {
		out = append(out, Example{
			Name:     Identifier(n, suffix),
			FileName: n,
			Path:     filepath.Join(dir, n),
		})
	}
	return out, nil
}

// listNames returns the raw directory listing without sorting.
func listNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return f.Readdirnames(-1)
}
