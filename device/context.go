// Package device carries the compute-context tag attached to meshes and
// assembled filter matrices. Assembly always runs on the host; the tag
// records where the caller wants the finished arrays to live, and callers
// move data after construction.
package device

import "strings"

// Context names a compute placement, "cpu" for host memory.
type Context string

const (
	Host Context = "cpu"
)

// New normalizes a placement label. The empty string means the host.
func New(label string) Context {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return Host
	}
	return Context(label)
}

func (c Context) IsHost() bool {
	return c == Host || c == ""
}

func (c Context) String() string {
	if c == "" {
		return string(Host)
	}
	return string(c)
}
