// Package node resolves the runtime-assigned identity of this process within
// a multi-node display deployment.
package node

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxIndex is the highest addressable viewpoint index (4 surfaces × 2 sub-views).
const MaxIndex = 7

// Identity is the node index of this process. Index 0 is the master node.
type Identity struct {
	Index int
}

// Resolve extracts the node index from command-line style arguments:
// "-client <index>" or "-client=<index>", with one or two dashes. An absent
// key resolves to the master node (index 0). A malformed or out-of-range
// value is an error; callers treat it as fatal at startup.
func Resolve(args []string) (Identity, error) {
	for i, a := range args {
		a = strings.TrimPrefix(a, "-")
		a = strings.TrimPrefix(a, "-")

		var raw string
		switch {
		case a == "client":
			if i+1 >= len(args) {
				return Identity{}, fmt.Errorf("node: -client requires an index")
			}
			raw = args[i+1]
		case strings.HasPrefix(a, "client="):
			raw = strings.TrimPrefix(a, "client=")
		default:
			continue
		}

		idx, err := strconv.Atoi(raw)
		if err != nil {
			return Identity{}, fmt.Errorf("node: invalid -client index %q: %w", raw, err)
		}
		if idx < 0 || idx > MaxIndex {
			return Identity{}, fmt.Errorf("node: -client index %d out of range [0,%d]", idx, MaxIndex)
		}
		return Identity{Index: idx}, nil
	}
	return Identity{Index: 0}, nil
}
