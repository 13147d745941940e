package filesystem

import "fmt"

// CollisionPolicy is a folder's rule for inserts that hit an existing child
// name. It is scoped to the folder being inserted into; there is no global
// setting.
type CollisionPolicy int

const (
	// RejectWithError fails the insert with ErrNameCollision. Default.
	RejectWithError CollisionPolicy = iota

	// Overwrite replaces the existing child's state when the variants
	// match and fails with ErrTypeMismatch when they differ
	Overwrite
)

func (p CollisionPolicy) String() string {
	switch p {
	case RejectWithError:
		return "reject"
	case Overwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", int(p))
	}
}

// ParsePolicy maps a policy name from config or a node definition file to
// its CollisionPolicy value
func ParsePolicy(name string) (CollisionPolicy, error) {
	switch name {
	case "reject":
		return RejectWithError, nil
	case "overwrite":
		return Overwrite, nil
	default:
		return RejectWithError, fmt.Errorf("unknown collision policy %q", name)
	}
}
