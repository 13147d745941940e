package filesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// Node is the tree's unit of storage: either a *File or a *Folder. The
// variant is fixed at construction and never changes; callers needing the
// concrete type go through AsFile/AsFolder rather than bare assertions.
type Node interface {
	// Name returns the node's name (last part of the path)
	Name() string

	// Rename changes the node's name and re-keys it in its parent's
	// children map. No sibling-uniqueness check is performed; uniqueness
	// is the inserting folder's responsibility at insert time only, so
	// renaming onto an existing sibling name shadows that sibling.
	Rename(newName string)

	// Clone returns a detached deep copy of the node. Mutating the copy
	// never affects the original and vice versa.
	Clone() Node

	// Path renders the node's absolute path by walking parent
	// back-references; nodes detached from the root render relative.
	Path() string

	setParent(p *Folder)
}

// File is a leaf node holding a string payload
type File struct {
	name    string
	content string
	parent  *Folder // non-owning; set by the folder that inserts the file
}

// NewFile creates a detached file node. Parent folder is responsible for
// linking the node when it is inserted as a child.
func NewFile(name, content string) *File {
	return &File{name: name, content: content}
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Rename(newName string) {
	if f.parent != nil {
		f.parent.rekeyChild(f.name, newName, f)
	}
	f.name = newName
}

func (f *File) Content() string {
	return f.content
}

func (f *File) ChangeContent(newContent string) {
	f.content = newContent
}

func (f *File) Clone() Node {
	return &File{name: f.name, content: f.content}
}

func (f *File) Path() string {
	return renderPath(f.parent, f.name)
}

func (f *File) setParent(p *Folder) {
	f.parent = p
}

// Folder is a container node owning a set of uniquely-named children. The
// parent back-reference is navigation-only and never extends a lifetime;
// the root is the unique folder without one.
type Folder struct {
	name     string
	parent   *Folder
	children *xsync.Map[string, Node] // child nodes by name
	policy   CollisionPolicy
}

// NewFolder creates a detached, empty folder with the default
// RejectWithError collision policy
func NewFolder(name string) *Folder {
	return &Folder{
		name:     name,
		children: xsync.NewMap[string, Node](),
	}
}

func (f *Folder) Name() string {
	return f.name
}

func (f *Folder) Rename(newName string) {
	if f.parent != nil {
		f.parent.rekeyChild(f.name, newName, f)
	}
	f.name = newName
}

// Policy returns the folder's collision policy
func (f *Folder) Policy() CollisionPolicy {
	return f.policy
}

// SetPolicy changes how inserts into this folder handle existing names
func (f *Folder) SetPolicy(p CollisionPolicy) {
	f.policy = p
}

func (f *Folder) HasParent() bool {
	return f.parent != nil
}

// Parent returns the enclosing folder; nil for the root and for folders
// detached by removal
func (f *Folder) Parent() *Folder {
	return f.parent
}

func (f *Folder) HasChild(name string) bool {
	_, ok := f.children.Load(name)
	return ok
}

// GetChild returns a child node by name
func (f *Folder) GetChild(name string) (Node, bool) {
	return f.children.Load(name)
}

// GetFile returns the named child as a file.
// Fails with ErrNotFound if absent and ErrWrongType if it is a folder.
func (f *Folder) GetFile(name string) (*File, error) {
	child, ok := f.children.Load(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return AsFile(child)
}

// GetFolder returns the named child as a folder.
// Fails with ErrNotFound if absent and ErrWrongType if it is a file.
func (f *Folder) GetFolder(name string) (*Folder, error) {
	child, ok := f.children.Load(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return AsFolder(child)
}

// Add inserts a node as a child, consulting this folder's collision policy
// when the name is already taken. On success the folder owns the node.
// Returns the stored node: the argument on a fresh insert, the existing
// child after an overwrite.
func (f *Folder) Add(n Node) (Node, error) {
	return f.AddWithPolicy(n, f.policy)
}

// AddWithPolicy is Add with an explicit policy overriding the folder's own
// for this single insert
func (f *Folder) AddWithPolicy(n Node, policy CollisionPolicy) (Node, error) {
	name := n.Name()
	if name == "" {
		return nil, fmt.Errorf("node name must not be empty")
	}

	existing, ok := f.children.Load(name)
	if !ok {
		f.children.Store(name, n)
		n.setParent(f)
		return n, nil
	}

	switch policy {
	case Overwrite:
		// Overwrite replaces state in place and never changes a
		// name's variant
		switch src := n.(type) {
		case *File:
			dst, ok := existing.(*File)
			if !ok {
				return nil, fmt.Errorf("%q: %w", name, ErrTypeMismatch)
			}
			dst.content = src.content
			return dst, nil
		case *Folder:
			dst, ok := existing.(*Folder)
			if !ok {
				return nil, fmt.Errorf("%q: %w", name, ErrTypeMismatch)
			}
			dst.replaceContents(src)
			return dst, nil
		default:
			return nil, fmt.Errorf("%q: unsupported node variant %T", name, n)
		}
	case RejectWithError:
		return nil, fmt.Errorf("%q: %w", name, ErrNameCollision)
	default:
		return nil, fmt.Errorf("%q: unknown collision policy %v", name, policy)
	}
}

// Remove deletes the named child, cascading to its entire subtree for a
// folder. Reports whether a child was actually removed.
func (f *Folder) Remove(name string) bool {
	if child, exists := f.children.LoadAndDelete(name); exists {
		child.setParent(nil)
		return true
	}
	return false
}

// Len returns the number of direct children
func (f *Folder) Len() int {
	return f.children.Size()
}

// Range iterates over the direct children; fn returning false stops the
// iteration
func (f *Folder) Range(fn func(name string, n Node) bool) {
	f.children.Range(fn)
}

// ChildNames returns the direct child names in lexical order
func (f *Folder) ChildNames() []string {
	names := make([]string, 0, f.children.Size())
	f.children.Range(func(name string, _ Node) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Clone returns a detached deep copy of the folder's subtree. The copy's
// nodes are freshly allocated with parent references pointing into the
// copy; cost is O(size of subtree). The walk uses an explicit work stack
// so deeply nested trees do not grow the call stack.
func (f *Folder) Clone() Node {
	dst := &Folder{
		name:     f.name,
		children: xsync.NewMap[string, Node](),
		policy:   f.policy,
	}

	type frame struct{ src, dst *Folder }
	stack := []frame{{f, dst}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fr.src.children.Range(func(name string, child Node) bool {
			switch c := child.(type) {
			case *File:
				cp := &File{name: c.name, content: c.content, parent: fr.dst}
				fr.dst.children.Store(name, cp)
			case *Folder:
				cp := &Folder{
					name:     c.name,
					children: xsync.NewMap[string, Node](),
					policy:   c.policy,
					parent:   fr.dst,
				}
				fr.dst.children.Store(name, cp)
				stack = append(stack, frame{c, cp})
			}
			return true
		})
	}

	return dst
}

func (f *Folder) Path() string {
	if f.parent == nil && f.name == RootName {
		return RootName
	}
	return renderPath(f.parent, f.name)
}

func (f *Folder) setParent(p *Folder) {
	f.parent = p
}

// replaceContents swaps this folder's state for src's: src's children are
// adopted (re-parented here) and src's policy is taken over. src is
// consumed the same way Add consumes a fresh insert.
func (f *Folder) replaceContents(src *Folder) {
	f.children.Range(func(name string, child Node) bool {
		child.setParent(nil)
		f.children.Delete(name)
		return true
	})
	src.children.Range(func(name string, child Node) bool {
		child.setParent(f)
		f.children.Store(name, child)
		return true
	})
	f.policy = src.policy
}

// rekeyChild moves a child to a new key after a rename
func (f *Folder) rekeyChild(oldName, newName string, n Node) {
	f.children.Delete(oldName)
	f.children.Store(newName, n)
}

// AsFile returns the node as a *File or fails with ErrWrongType
func AsFile(n Node) (*File, error) {
	if f, ok := n.(*File); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%q is not a file: %w", n.Name(), ErrWrongType)
}

// AsFolder returns the node as a *Folder or fails with ErrWrongType
func AsFolder(n Node) (*Folder, error) {
	if f, ok := n.(*Folder); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%q is not a folder: %w", n.Name(), ErrWrongType)
}

// renderPath walks parent back-references upward and joins the segments.
// Chains reaching the root render absolute; detached chains render
// relative from their topmost node.
func renderPath(parent *Folder, name string) string {
	segs := []string{name}
	p := parent
	for p != nil && p.parent != nil {
		segs = append(segs, p.name)
		p = p.parent
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	joined := strings.Join(segs, Separator)
	if p != nil && p.name == RootName {
		return RootName + joined
	}
	if p != nil {
		return p.name + Separator + joined
	}
	return joined
}
