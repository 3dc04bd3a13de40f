/*
File   : opdef/source/source.go
Package source resolves and reads the files named by `include` statements
(spec.md §4.8), adapted from the teacher's plain os.ReadFile file-loading
style (main/main.go's runFile). It additionally tracks the chain of
currently-open includes to detect cycles, a feature the distilled spec is
silent on but original_source/'s file-stack guard motivates (SPEC_FULL.md
§4).
*/
package source

import (
	"os"
	"path/filepath"

	"github.com/opdeflang/opdef/opdeferr"
)

// Ext is the conventional extension for opdef source files. include
// statements name a file without an extension; Read tries the bare name
// first, then the name with Ext appended.
const Ext = ".opd"

// Stack tracks the chain of include names currently being processed, so a
// file that (directly or transitively) includes itself is caught as
// CyclicInclude rather than recursing forever.
type Stack struct {
	open []string
	set  map[string]struct{}
}

// NewStack builds an empty include stack.
func NewStack() *Stack {
	return &Stack{set: make(map[string]struct{})}
}

// Push registers name as newly entered. It fails with CyclicInclude if
// name is already open somewhere up the current include chain.
func (s *Stack) Push(name string) *opdeferr.Error {
	if _, ok := s.set[name]; ok {
		return opdeferr.New(opdeferr.CyclicInclude, "include cycle detected: %q is already being processed", name)
	}
	s.open = append(s.open, name)
	s.set[name] = struct{}{}
	return nil
}

// Pop closes the most recently pushed name.
func (s *Stack) Pop() {
	if len(s.open) == 0 {
		return
	}
	last := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	delete(s.set, last)
}

// Depth reports how many includes are currently open.
func (s *Stack) Depth() int { return len(s.open) }

// Contains reports whether name is already open somewhere up the current
// include chain, without mutating the stack. Callers use this to detect a
// cycle that loops back to an in-memory source (one never read through
// Read, so it has no on-disk path to fail on) before attempting to resolve
// it as a file.
func (s *Stack) Contains(name string) bool {
	_, ok := s.set[name]
	return ok
}

// Read loads the named include file relative to baseDir, trying the bare
// name and then name+Ext.
func Read(baseDir, name string) (string, error) {
	path := filepath.Join(baseDir, name)
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	data, altErr := os.ReadFile(path + Ext)
	if altErr == nil {
		return string(data), nil
	}
	return "", err
}
