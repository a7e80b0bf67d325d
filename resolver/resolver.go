// Package resolver locates data files such as coefficient tables by
// searching an ordered list of directories.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
)

// EnvPath is the environment variable holding extra search directories,
// separated by the OS path-list separator.
const EnvPath = "SPECTRAL_PATH"

// ErrNotFound is matched by errors.Is for every NotFoundError.
var ErrNotFound = errors.New("resolver: file not found")

// NotFoundError reports a name that is not present in any search directory.
type NotFoundError struct {
	Name     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resolver: %q not found in [%s]", e.Name, strings.Join(e.Searched, ", "))
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Resolver searches a list of directories for files.
//
// Resolver is safe for concurrent use.
type Resolver struct {
	mu   sync.RWMutex
	dirs []string
}

// New returns a resolver searching dirs in order. Leading "~" is expanded
// to the user's home directory.
func New(dirs ...string) *Resolver {
	r := &Resolver{}
	for _, d := range dirs {
		r.Append(d)
	}
	return r
}

// FromEnv returns a resolver searching the directories in $SPECTRAL_PATH
// followed by the working directory and the executable's directory.
func FromEnv() *Resolver {
	r := New(filepath.SplitList(os.Getenv(EnvPath))...)
	r.Append(".")
	if exe, err := os.Executable(); err == nil {
		r.Append(filepath.Dir(exe))
	}
	return r
}

// Append adds dir to the end of the search list.
func (r *Resolver) Append(dir string) {
	if dir = expand(dir); dir == "" {
		return
	}
	r.mu.Lock()
	r.dirs = append(r.dirs, dir)
	r.mu.Unlock()
}

// Prepend adds dir to the front of the search list.
func (r *Resolver) Prepend(dir string) {
	if dir = expand(dir); dir == "" {
		return
	}
	r.mu.Lock()
	r.dirs = append([]string{dir}, r.dirs...)
	r.mu.Unlock()
}

// Dirs returns a copy of the search list.
func (r *Resolver) Dirs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.dirs...)
}

// Resolve returns the path of the first regular file called name in the
// search list. Absolute names are checked as-is.
func (r *Resolver) Resolve(name string) (string, error) {
	name = expand(name)
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", &NotFoundError{Name: name}
	}

	dirs := r.Dirs()
	for _, d := range dirs {
		p := filepath.Join(d, name)
		if isFile(p) {
			return filepath.Abs(p)
		}
	}
	return "", &NotFoundError{Name: name, Searched: dirs}
}

func expand(p string) string {
	p = strings.TrimSpace(p)
	if e, err := homedir.Expand(p); err == nil {
		return e
	}
	return p
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	if err != nil {
		return false
	}
	return fi.Mode().Type()&fs.ModeType == 0
}
