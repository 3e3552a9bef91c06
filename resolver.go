// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package htmlmath

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pb1729/html-math/ast"
)

// Resolver is used by the compiler to locate formulas by name.
type Resolver interface {
	FindFormula(name string) (SearchResult, error)
}

// SearchResult represents information about a formula. Exactly one field
// should be set. If both are, the compiler uses AST and ignores Source.
type SearchResult struct {
	// The formula's notation. If it is also an io.Closer, the compiler closes
	// it once the formula has been read.
	Source io.Reader
	// A formula that has already been parsed. Its macro calls, if any, are
	// still expanded by the compiler.
	AST *ast.Root
}

// ResolverFunc is a simple function type that implements Resolver.
type ResolverFunc func(string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

// FindFormula implements Resolver.
func (f ResolverFunc) FindFormula(name string) (SearchResult, error) {
	return f(name)
}

// CompositeResolver is a slice of resolvers, which are consulted in order
// until one can supply a result. If none of the constituent resolvers can
// supply a result, the error returned by the first resolver is returned. If
// the slice of resolvers is empty, all operations return
// [fs.ErrNotExist].
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

// FindFormula implements Resolver.
func (f CompositeResolver) FindFormula(name string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, fs.ErrNotExist
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindFormula(name)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver can resolve formula names into source code. It uses an
// optional list of directories to search for a name. It uses an Accessor
// to open each file, which defaults to reading from the file system.
type SourceResolver struct {
	// Optional list of directories to search. If present, each name is
	// joined to each directory in turn and the first one that exists is
	// used. If empty, names are given to Accessor as they are.
	ImportPaths []string
	// Optional function for returning a file's contents. If nil, then
	// os.Open is used to open files on the file system.
	Accessor func(path string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

// FindFormula implements Resolver.
func (r *SourceResolver) FindFormula(name string) (SearchResult, error) {
	if len(r.ImportPaths) == 0 {
		reader, err := r.accessFile(name)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}

	var e error
	for _, importPath := range r.ImportPaths {
		reader, err := r.accessFile(filepath.Join(importPath, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}
	return SearchResult{}, e
}

func (r *SourceResolver) accessFile(path string) (io.ReadCloser, error) {
	if r.Accessor != nil {
		return r.Accessor(path)
	}
	return os.Open(path)
}

// SourceAccessorFromMap returns a function that can be used as the Accessor
// field of a SourceResolver that uses the given map to load source. The map
// keys are file names and the values are the formulas they contain.
//
// If the given name is not present in the map, the accessor returns an error
// wrapping [fs.ErrNotExist].
func SourceAccessorFromMap(srcs map[string]string) func(string) (io.ReadCloser, error) {
	return func(path string) (io.ReadCloser, error) {
		src, ok := srcs[path]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		return io.NopCloser(strings.NewReader(src)), nil
	}
}
