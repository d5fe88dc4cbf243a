//go:build !linux

package procsnap

import (
	"runtime"

	"github.com/mrigan/sysprims/sysprimserr"
)

// descendants has no implementation outside Linux: there is no portable
// /proc-equivalent in scope here. When this returns NotSupported, treekill
// signals only the target itself, or its whole group if it leads one.
func descendants(pid int) ([]int, error) {
	return nil, sysprimserr.NotSupportedOp("descendant resolution", runtime.GOOS)
}
