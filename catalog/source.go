package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// Source yields the documents a catalog is built from.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}

// FSSource discovers Markdown files in one directory of a filesystem.
type FSSource struct {
	FS      fs.FS
	Dir     string // defaults to "."
	Pattern string // defaults to "*.md"
}

// NewFSSource returns a source reading dir/*.md from fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	return &FSSource{FS: fsys, Dir: dir}
}

// Documents lists matching files in lexical path order. Files are read
// lazily by each Document's Load.
func (s *FSSource) Documents(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	pattern := s.Pattern
	if pattern == "" {
		pattern = "*.md"
	}
	matches, err := fs.Glob(s.FS, path.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("catalog: glob %s: %w", pattern, err)
	}
	sort.Strings(matches)

	docs := make([]Document, 0, len(matches))
	for _, name := range matches {
		info, err := fs.Stat(s.FS, name)
		if err != nil || info.IsDir() {
			continue
		}
		docs = append(docs, Document{
			Path: name,
			Load: s.loader(name),
		})
	}
	return docs, nil
}

func (s *FSSource) loader(name string) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := fs.ReadFile(s.FS, name)
		if err != nil {
			return "", fmt.Errorf("catalog: read %s: %w", name, err)
		}
		return string(data), nil
	}
}

// StaticSource serves a fixed list of documents.
type StaticSource []Document

// Documents returns the list as is.
func (s StaticSource) Documents(context.Context) ([]Document, error) {
	out := make([]Document, len(s))
	copy(out, s)
	return out, nil
}

// TextDocument returns a Document whose content is already in memory.
func TextDocument(path, text string) Document {
	return Document{
		Path: path,
		Load: func(context.Context) (string, error) { return text, nil },
	}
}
