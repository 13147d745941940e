package filesystem

import (
	"fmt"
	"path"
	"strings"

	"github.com/brettbedarf/vstore"
	"github.com/brettbedarf/vstore/config"
	"github.com/brettbedarf/vstore/internal/util"
)

// FileSystem is the store façade: it owns the root folder, tracks the
// current working location and resolves every operation's path before
// delegating to the target folder.
//
// The working path string is the source of truth for the working location;
// the folder pointer is a cache into the tree that is re-resolved after any
// removal so it can never dangle into a detached subtree.
type FileSystem struct {
	cfg         *config.Config
	root        *Folder
	workingPath string
	working     *Folder
}

// NewFS creates a store with an empty root folder as the working location.
// The configured default collision policy seeds the root and every folder
// the loaders create; folders never inherit policy from their parent.
func NewFS(cfg *config.Config) *FileSystem {
	root := NewFolder(RootName)

	fs := &FileSystem{
		cfg:         cfg,
		root:        root,
		workingPath: RootName,
		working:     root,
	}
	root.SetPolicy(fs.defaultPolicy())
	return fs
}

// Root returns the store's root folder
func (fs *FileSystem) Root() *Folder {
	return fs.root
}

// Create inserts the node into the folder the path expression resolves to
// ("." for the working folder) using that folder's collision policy.
// Returns the stored node.
func (fs *FileSystem) Create(n Node, pathExpr string) (Node, error) {
	if pathExpr == "" {
		pathExpr = "."
	}
	target, err := resolveFolder(fs.root, fs.working, pathExpr)
	if err != nil {
		return nil, err
	}
	return target.Add(n)
}

// GetFile resolves a path expression, relative to the working folder unless
// absolute, whose last segment names a file
func (fs *FileSystem) GetFile(pathExpr string) (*File, error) {
	return resolveFile(fs.root, fs.working, pathExpr)
}

// GetFolder resolves a path expression to a folder, relative to the working
// folder unless absolute
func (fs *FileSystem) GetFolder(pathExpr string) (*Folder, error) {
	return resolveFolder(fs.root, fs.working, pathExpr)
}

// Remove resolves the path's parent folder and removes the named child,
// cascading to its entire subtree. Reports whether a node was actually
// removed; paths that do not resolve remove nothing.
func (fs *FileSystem) Remove(pathExpr string) bool {
	dir, base := path.Split(pathExpr)
	if base == "" || base == "." || base == ".." {
		return false
	}

	parent, err := resolveFolder(fs.root, fs.working, dir)
	if err != nil {
		return false
	}

	removed := parent.Remove(base)
	if removed {
		fs.revalidateWorking()
	}
	return removed
}

// ChangeDirectory moves the working location to the folder the path
// expression resolves to. Path and cached pointer update together only
// after successful resolution; on error neither changes.
func (fs *FileSystem) ChangeDirectory(pathExpr string) error {
	target, err := resolveFolder(fs.root, fs.working, pathExpr)
	if err != nil {
		return err
	}

	fs.working = target
	fs.workingPath = target.Path()
	return nil
}

// WorkingDirectory returns the normalized path of the working folder
func (fs *FileSystem) WorkingDirectory() string {
	return fs.workingPath
}

// Search collects every file in the whole tree named name, irrespective of
// the working folder
func (fs *FileSystem) Search(name string) []*File {
	return SearchFiles(fs.root, name)
}

// revalidateWorking re-resolves the cached working folder from the working
// path. When a removal took out an ancestor of the working folder the path
// no longer resolves and the store falls back to the root.
func (fs *FileSystem) revalidateWorking() {
	if wf, err := resolveFolder(fs.root, fs.root, fs.workingPath); err == nil {
		fs.working = wf
		return
	}

	logger := util.GetLogger("FS.Remove")
	logger.Warn().Str("workingPath", fs.workingPath).Msg("Working folder removed; resetting to root")
	fs.workingPath = RootName
	fs.working = fs.root
}

// AddFileNode adds a file node from a definition request. It will add any
// missing ancestor folders in the path and return the newly created leaf.
// If a node already exists at the requested path, it will return an error.
func (fs *FileSystem) AddFileNode(req *vstore.FileCreateRequest) (*File, error) {
	logger := util.GetLogger("AddFileNode")

	parent := fs.root
	dirPath, name := path.Split(req.Path)
	if name == "" || name == "." || name == ".." {
		err := fmt.Errorf("path %q does not name a file", req.Path)
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file")
		return nil, err
	}
	if dirPath != "" {
		// Implicit folder requests are just the same embedded node
		// values with a different path
		dirReq := vstore.FolderCreateRequest{NodeCreateRequest: req.NodeCreateRequest}
		dirReq.Path = dirPath
		d, err := fs.AddFolderNode(&dirReq)
		if err != nil {
			logger.Error().Err(err).Str("path", dirReq.Path).Msg("Failed to create file's ancestor folder(s)")
			return nil, err
		}
		parent = d
	}

	if parent.HasChild(name) {
		err := fmt.Errorf("%q: %w", req.Path, ErrNameCollision)
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file")
		return nil, err
	}

	file := NewFile(name, req.Content)
	if _, err := parent.Add(file); err != nil {
		return nil, err
	}
	logger.Debug().Str("path", req.Path).Str("uuid", req.UUID).Msg("Added new file node")
	return file, nil
}

// AddFolderNode adds all missing folders in the request's path starting at
// the root and returns the leaf. It is equivalent to calling `mkdir -p`
// from a shell: existing folders along the way are descended into, only
// missing ones are created, and an existing leaf is not an error. A file
// occupying any path segment fails with ErrWrongType.
//
// A policy named on the request applies to the leaf only; implicitly
// created ancestors start from the configured default.
func (fs *FileSystem) AddFolderNode(req *vstore.FolderCreateRequest) (*Folder, error) {
	logger := util.GetLogger("AddFolderNode")

	leafPolicy := fs.defaultPolicy()
	if req.Policy != "" {
		p, err := ParsePolicy(req.Policy)
		if err != nil {
			logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create folder")
			return nil, err
		}
		leafPolicy = p
	}

	cur := fs.root
	newCnt := 0
	for _, name := range strings.Split(req.Path, Separator) {
		if name == "" || name == "." {
			continue
		}
		if name == ".." {
			err := fmt.Errorf("path %q: definition paths must not contain %q", req.Path, "..")
			logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create folder")
			return nil, err
		}

		if child, ok := cur.GetChild(name); ok {
			next, err := AsFolder(child)
			if err != nil {
				logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create folder")
				return nil, err
			}
			cur = next
			continue
		}

		// Make new folder
		folder := NewFolder(name)
		folder.SetPolicy(fs.defaultPolicy())
		if _, err := cur.Add(folder); err != nil {
			return nil, err
		}
		newCnt++
		cur = folder
	}

	if cur != fs.root && req.Policy != "" {
		cur.SetPolicy(leafPolicy)
	}
	if newCnt > 0 {
		logger.Info().Str("path", req.Path).Msg(fmt.Sprintf("Created %d new folder(s)", newCnt))
	}

	return cur, nil
}

func (fs *FileSystem) defaultPolicy() CollisionPolicy {
	if fs.cfg == nil || fs.cfg.DefaultPolicy == "" {
		return RejectWithError
	}
	p, err := ParsePolicy(fs.cfg.DefaultPolicy)
	if err != nil {
		logger := util.GetLogger("FS")
		logger.Warn().Err(err).Msg("Invalid default collision policy; using reject")
		return RejectWithError
	}
	return p
}
