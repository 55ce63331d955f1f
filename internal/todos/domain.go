package todos

// Todo represents a single task-list item. OwnerID is the only field the
// access policy ever inspects.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Complete    bool
	OwnerID     int64
}
