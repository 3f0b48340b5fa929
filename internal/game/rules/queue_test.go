package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetQueueDrains(t *testing.T) {
	q := NewTargetQueue([]string{"a", "b", "c"})
	assert.Equal(t, 3, q.Remaining())

	id, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, "a", id)

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "b", head)
	assert.Equal(t, 2, q.Remaining(), "peek does not consume")

	q.Next()
	q.Next()
	_, ok = q.Next()
	assert.False(t, ok)
	assert.True(t, q.Exhausted())
}

func TestTargetQueueRemove(t *testing.T) {
	q := NewTargetQueue([]string{"a", "b", "c"})
	q.Next()

	q.Remove("c")
	assert.Equal(t, 1, q.Remaining())

	// Already-consumed entries are not touched.
	q.Remove("a")
	id, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, "b", id)
	assert.True(t, q.Exhausted())
}

func TestTargetQueueNilSafety(t *testing.T) {
	var q *TargetQueue
	assert.True(t, q.Exhausted())
	assert.Equal(t, 0, q.Remaining())
	assert.Nil(t, q.Clone())
}

func TestTargetQueueCloneIsIndependent(t *testing.T) {
	q := NewTargetQueue([]string{"a", "b"})
	q.Next()

	clone := q.Clone()
	clone.Remove("b")

	assert.Equal(t, 1, q.Remaining())
	assert.Equal(t, 0, clone.Remaining())
}

func TestNewTargetQueueCopiesInput(t *testing.T) {
	ids := []string{"a", "b"}
	q := NewTargetQueue(ids)
	ids[0] = "mutated"

	head, _ := q.Peek()
	assert.Equal(t, "a", head)
}
