package entity

import "fmt"

// GroupDescriptor is the validated identity of a remote file group.
// It only exists in a valid state: construction goes through the validator,
// which returns either a complete descriptor or a common.Rejection.
type GroupDescriptor struct {
	Host    string // Allow-listed CDN hostname
	GroupID string // UUID of the group, lowercase
	Count   int    // Number of files in the group, 1..max_files
}

// FileURL returns the canonical per-index file address. All per-file URLs
// are derived from the descriptor, nothing is stored per file.
func (d *GroupDescriptor) FileURL(index int) string {
	return fmt.Sprintf("https://%s/%s~%d/nth/%d/", d.Host, d.GroupID, d.Count, index)
}

// Group is a descriptor together with the resolved per-file entries,
// ready for rendering.
type Group struct {
	*GroupDescriptor
	Files []*FileEntry
}
