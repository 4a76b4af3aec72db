package activity

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	Type   *EntryType
	Limit  int
	Offset int
}
