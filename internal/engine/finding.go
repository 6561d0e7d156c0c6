package engine

import "fmt"

// Access classifies how a finding touches the queried identifier.
type Access int

const (
	AccessRead Access = iota
	AccessWrite
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "READ"
	case AccessWrite:
		return "WRITE"
	case AccessReadWrite:
		return "READWRITE"
	default:
		return fmt.Sprintf("ACCESS_%d", int(a))
	}
}

// ContainerKind says whether a finding belongs to a map or a common event.
type ContainerKind int

const (
	ContainerMap ContainerKind = iota
	ContainerCommonEvent
)

func (k ContainerKind) String() string {
	switch k {
	case ContainerMap:
		return "MAP"
	case ContainerCommonEvent:
		return "COMMON_EVENT"
	default:
		return fmt.Sprintf("CONTAINER_%d", int(k))
	}
}

// Container identifies the map or common event that owns a finding.
type Container struct {
	Kind ContainerKind
	ID   int64
}

// Owner identifies the event or common event a finding was found in.
// X and Y are zero for common events.
type Owner struct {
	ID   int64
	Name string
	X    int64
	Y    int64
}

// Finding is one classified usage of the queried identifier.
type Finding struct {
	Access    Access
	Active    bool
	Container Container
	Owner     Owner
	// Page is the 1-based event page number, 0 for common events.
	Page int
	// Line is the 1-based command line, 0 for gate findings.
	Line        int
	Description string
}

// HasLine reports whether the finding came from a command line rather than
// a page condition or trigger.
func (f Finding) HasLine() bool {
	return f.Line > 0
}
