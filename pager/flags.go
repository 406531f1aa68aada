package pager

import "os"

// pagerOpenFlags is split out so the open mode is defined in one place; Open
// is its only caller.
func pagerOpenFlags() int {
	return os.O_RDWR | os.O_CREATE
}
