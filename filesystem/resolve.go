package filesystem

import (
	"fmt"
	"path"
	"strings"
)

const (
	// Separator delimits path expression segments
	Separator = "/"

	// RootName is the name the store's root folder is created with
	RootName = "/"
)

// resolveFolder interprets a path expression against start, segment by
// segment: empty segments and "." are skipped, ".." moves to the parent
// (ErrNoParent at the root), a leading separator restarts the walk at root,
// and any other segment descends into the named child folder (ErrNotFound
// if absent, ErrWrongType if a file occupies the name). Resolution never
// mutates the tree.
func resolveFolder(root, start *Folder, pathExpr string) (*Folder, error) {
	cur := start
	if strings.HasPrefix(pathExpr, Separator) {
		cur = root
	}

	for _, seg := range strings.Split(pathExpr, Separator) {
		switch seg {
		case "", ".":
			continue
		case "..":
			if cur.parent == nil {
				return nil, fmt.Errorf("%q: %w", pathExpr, ErrNoParent)
			}
			cur = cur.parent
		default:
			child, ok := cur.children.Load(seg)
			if !ok {
				return nil, fmt.Errorf("%q in %q: %w", seg, pathExpr, ErrNotFound)
			}
			next, ok := child.(*Folder)
			if !ok {
				return nil, fmt.Errorf("%q in %q: %w", seg, pathExpr, ErrWrongType)
			}
			cur = next
		}
	}

	return cur, nil
}

// resolveFile resolves a path expression whose last segment names a file;
// all preceding segments must resolve to folders
func resolveFile(root, start *Folder, pathExpr string) (*File, error) {
	dir, base := path.Split(pathExpr)
	if base == "" || base == "." || base == ".." {
		return nil, fmt.Errorf("%q does not name a file: %w", pathExpr, ErrNotFound)
	}

	folder, err := resolveFolder(root, start, dir)
	if err != nil {
		return nil, err
	}
	return folder.GetFile(base)
}
