package rules

// TargetQueue is the ordered set of remaining targets for a one-to-many
// attack. Only the head of the queue is ever the active pending target;
// resolution drains the queue one entry at a time. Fields are exported so
// snapshots serialize with encoding/gob.
type TargetQueue struct {
	Targets []string
	Head    int
}

// NewTargetQueue creates a queue over the given player IDs in order.
func NewTargetQueue(ids []string) *TargetQueue {
	targets := make([]string, len(ids))
	copy(targets, ids)
	return &TargetQueue{Targets: targets}
}

// Next pops the head of the queue. Returns false when exhausted.
func (q *TargetQueue) Next() (string, bool) {
	if q.Exhausted() {
		return "", false
	}
	id := q.Targets[q.Head]
	q.Head++
	return id, true
}

// Peek returns the head without consuming it.
func (q *TargetQueue) Peek() (string, bool) {
	if q.Exhausted() {
		return "", false
	}
	return q.Targets[q.Head], true
}

// Remove drops an id from the remaining portion of the queue. Used when a
// queued target is eliminated before its response comes up.
func (q *TargetQueue) Remove(id string) {
	for i := q.Head; i < len(q.Targets); i++ {
		if q.Targets[i] == id {
			q.Targets = append(q.Targets[:i], q.Targets[i+1:]...)
			return
		}
	}
}

// Exhausted reports whether no targets remain.
func (q *TargetQueue) Exhausted() bool {
	return q == nil || q.Head >= len(q.Targets)
}

// Remaining returns the number of targets not yet resolved.
func (q *TargetQueue) Remaining() int {
	if q == nil {
		return 0
	}
	return len(q.Targets) - q.Head
}

// Clone returns a deep copy of the queue.
func (q *TargetQueue) Clone() *TargetQueue {
	if q == nil {
		return nil
	}
	targets := make([]string, len(q.Targets))
	copy(targets, q.Targets)
	return &TargetQueue{Targets: targets, Head: q.Head}
}
