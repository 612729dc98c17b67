package transpiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("include not found")

// NotFoundError reports an include target that matched no candidate path.
type NotFoundError struct {
	Name     string
	Attempts []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not resolve %q, attempts: %s", e.Name, strings.Join(e.Attempts, ","))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Resolution is the outcome of a successful candidate search.
type Resolution struct {
	// Path is the winning candidate.
	Path string
	// Matches lists every existing candidate in enumeration order; Path is the last one.
	Matches []string
	// Attempts lists every candidate tested, existing or not.
	Attempts []string
}

// Resolve searches every directory and every extension for name.
//
// The search never stops early: every (directory, extension) pair is tested,
// directories in the outer loop and extensions in the inner one, and the last
// existing candidate wins. A later include directory therefore shadows an
// earlier one, and within one directory a later extension shadows an earlier
// one.
func Resolve(name string, dirs, exts []string) (*Resolution, error) {
	res := &Resolution{
		Attempts: make([]string, 0, len(dirs)*len(exts)),
	}

	for _, dir := range dirs {
		base := filepath.Join(dir, name)
		for _, ext := range exts {
			candidate := base + ext
			res.Attempts = append(res.Attempts, candidate)
			if exists(candidate) {
				res.Path = candidate
				res.Matches = append(res.Matches, candidate)
			}
		}
	}

	if res.Path == "" {
		return nil, &NotFoundError{Name: name, Attempts: res.Attempts}
	}

	return res, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
