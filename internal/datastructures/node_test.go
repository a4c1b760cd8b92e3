package datastructures_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vskvj3/liblist/internal/datastructures"
	"github.com/vskvj3/liblist/internal/utils"
)

func newHelper() *datastructures.Helper {
	return datastructures.NewHelper(
		datastructures.WithLogger(utils.NewWriterLogger(io.Discard, io.Discard)),
		datastructures.WithDumpWriter(io.Discard),
	)
}

// newChain returns a head followed by one node per value.
func newChain(t *testing.T, h *datastructures.Helper, values ...string) *datastructures.Node {
	t.Helper()
	head, err := h.NewList()
	require.NoError(t, err)
	for i := range values {
		require.NoError(t, head.Add(&values[i]))
	}
	return head
}

func length(t *testing.T, n *datastructures.Node) int {
	t.Helper()
	l, err := n.Length()
	require.NoError(t, err)
	return l
}

func TestNewListIsHead(t *testing.T) {
	head, err := newHelper().NewList()
	require.NoError(t, err)

	assert.Equal(t, 1, length(t, head))
	assert.Nil(t, head.Prev())
	assert.Nil(t, head.Next())
	assert.True(t, head.IsHead())
	assert.Same(t, head, head.Head())
	assert.Nil(t, head.Data())
	assert.Zero(t, head.Tag())
	assert.NotZero(t, head.ID())
}

func TestJoin(t *testing.T) {
	h := newHelper()
	a := newChain(t, h, "a1", "a2")
	b := newChain(t, h, "b1", "b2")
	oldTailA, err := h.Last(a)
	require.NoError(t, err)
	oldTailB, err := h.Last(b)
	require.NoError(t, err)
	lenA, lenB := length(t, a), length(t, b)

	require.NoError(t, a.Join(b))

	assert.Equal(t, lenA+lenB, length(t, a))
	tail, err := h.Last(a)
	require.NoError(t, err)
	assert.Same(t, oldTailB, tail)
	assert.Same(t, oldTailA, b.Prev())
	assert.False(t, b.IsHead())
	for p := a; p != nil; p = p.Next() {
		assert.Same(t, a, p.Head())
		if p.Next() != nil {
			assert.Same(t, p, p.Next().Prev())
		}
	}
}

func TestJoinDetachesTargetFromItsChain(t *testing.T) {
	h := newHelper()
	a := newChain(t, h, "a1")
	b := newChain(t, h, "b1", "b2", "b3")
	middle := b.Next().Next()

	require.NoError(t, a.Join(middle))

	assert.Equal(t, 2, length(t, b))
	assert.Equal(t, 4, length(t, a))
	assert.Same(t, a, middle.Head())
}

func TestJoinFailures(t *testing.T) {
	h := newHelper()
	a := newChain(t, h, "a1", "a2")
	b := newChain(t, h, "b1")
	var nilNode *datastructures.Node

	assert.ErrorIs(t, nilNode.Join(b), datastructures.ErrNilNode)
	assert.ErrorIs(t, a.Join(nil), datastructures.ErrNilNode)
	assert.ErrorIs(t, a.Next().Join(b), datastructures.ErrNotHead)
	assert.ErrorIs(t, a.Join(a), datastructures.ErrSameChain)
	assert.ErrorIs(t, a.Join(a.Next()), datastructures.ErrSameChain)

	assert.Equal(t, 3, length(t, a))
	assert.Equal(t, 2, length(t, b))
}

func TestAdd(t *testing.T) {
	h := newHelper()
	head := newChain(t, h, "a")
	before := length(t, head)

	v := "b"
	require.NoError(t, head.Add(&v))

	assert.Equal(t, before+1, length(t, head))
	tail, err := h.Last(head)
	require.NoError(t, err)
	assert.Same(t, &v, tail.Data())

	v = "changed"
	assert.Equal(t, "changed", *tail.Data().(*string))
}

func TestAddFailures(t *testing.T) {
	head := newChain(t, newHelper(), "a")

	assert.ErrorIs(t, head.Add(nil), datastructures.ErrNilArgument)
	assert.ErrorIs(t, head.Add((*string)(nil)), datastructures.ErrNilArgument)
	assert.ErrorIs(t, head.Add("by value"), datastructures.ErrNotReference)
	assert.ErrorIs(t, head.AddWithTag(42, 1), datastructures.ErrNotReference)
	assert.ErrorIs(t, head.AppendTagged((*int)(nil), 1), datastructures.ErrNilArgument)
	v := "x"
	assert.ErrorIs(t, head.Next().Add(&v), datastructures.ErrNotHead)
	assert.Equal(t, 2, length(t, head))
	assert.Zero(t, head.Tag())
}

func TestAddTagTargetsHead(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		values := make([]string, n)
		head := newChain(t, newHelper(), values...)

		require.NoError(t, head.AddTag(7))

		assert.Equal(t, 7, head.Tag())
		for p := head.Next(); p != nil; p = p.Next() {
			assert.Zero(t, p.Tag())
		}
	}
}

func TestTagTail(t *testing.T) {
	h := newHelper()
	head := newChain(t, h, "a", "b")

	require.NoError(t, head.TagTail(9))

	tail, err := h.Last(head)
	require.NoError(t, err)
	assert.Equal(t, 9, tail.Tag())
	assert.Zero(t, head.Tag())
	assert.ErrorIs(t, tail.TagTail(1), datastructures.ErrNotHead)
}

func TestSetTagOnAnyNode(t *testing.T) {
	head := newChain(t, newHelper(), "a", "b")
	middle := head.Next()

	require.NoError(t, middle.SetTag(5))
	assert.Equal(t, 5, middle.Tag())

	var nilNode *datastructures.Node
	assert.ErrorIs(t, nilNode.SetTag(1), datastructures.ErrNilNode)
}

func TestAddWithTag(t *testing.T) {
	h := newHelper()
	head := newChain(t, h, "a")

	v := "b"
	require.NoError(t, head.AddWithTag(&v, 3))

	assert.Equal(t, 3, length(t, head))
	assert.Equal(t, 3, head.Tag())
	tail, err := h.Last(head)
	require.NoError(t, err)
	assert.Same(t, &v, tail.Data())
	assert.Zero(t, tail.Tag())

	assert.ErrorIs(t, head.AddWithTag(nil, 1), datastructures.ErrNilArgument)
	assert.ErrorIs(t, tail.AddWithTag(&v, 1), datastructures.ErrNotHead)
}

func TestAppendTagged(t *testing.T) {
	h := newHelper()
	head := newChain(t, h)

	v := "a"
	require.NoError(t, head.AppendTagged(&v, 11))

	tail, err := h.Last(head)
	require.NoError(t, err)
	assert.Equal(t, 11, tail.Tag())
	assert.Same(t, &v, tail.Data())
	assert.Zero(t, head.Tag())
}

func TestTerminate(t *testing.T) {
	h := newHelper()
	head := newChain(t, h, "a")
	allocs := h.Stats().Allocations

	require.NoError(t, head.Terminate())

	assert.Equal(t, 3, length(t, head))
	assert.Equal(t, allocs+1, h.Stats().Allocations)
	tail, err := h.Last(head)
	require.NoError(t, err)
	assert.True(t, tail.IsSentinel())
	assert.Nil(t, tail.Data())
	assert.False(t, tail.Released())

	assert.ErrorIs(t, tail.Terminate(), datastructures.ErrNotHead)
}

func TestForeachVisitsEveryNode(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		h := newHelper()
		head := newChain(t, h, make([]string, n-1)...)

		var visited []*datastructures.Node
		err := head.Foreach(func(self, node *datastructures.Node, arg interface{}) {
			assert.Same(t, head, self)
			assert.Nil(t, arg)
			visited = append(visited, node)
		}, nil)
		require.NoError(t, err)

		require.Len(t, visited, n, "chain of %d nodes", n)
		p := head
		for _, node := range visited {
			assert.Same(t, p, node)
			p = p.Next()
		}
	}
}

func TestForeachPassesArg(t *testing.T) {
	head := newChain(t, newHelper(), "a", "b")

	count := 0
	err := head.Foreach(func(_, _ *datastructures.Node, arg interface{}) {
		*arg.(*int)++
	}, &count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestForeachFailures(t *testing.T) {
	head := newChain(t, newHelper(), "a")
	noop := func(_, _ *datastructures.Node, _ interface{}) {}

	assert.ErrorIs(t, head.Foreach(nil, nil), datastructures.ErrNilArgument)
	assert.ErrorIs(t, head.Next().Foreach(noop, nil), datastructures.ErrNotHead)
}

func TestLengthNotHead(t *testing.T) {
	head := newChain(t, newHelper(), "a")

	l, err := head.Next().Length()
	assert.ErrorIs(t, err, datastructures.ErrNotHead)
	assert.Equal(t, -1, l)
}

func TestValues(t *testing.T) {
	head := newChain(t, newHelper(), "a", "b")
	require.NoError(t, head.Terminate())

	values, err := head.Values()
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, "a", *values[0].(*string))
	assert.Equal(t, "b", *values[1].(*string))
}

func TestDestroyReleasesNodeAndSuccessor(t *testing.T) {
	h := newHelper()
	head := newChain(t, h, "a", "b", "c")
	second := head.Next()
	third := second.Next()

	require.NoError(t, head.Destroy())

	assert.True(t, head.Released())
	assert.True(t, second.Released())
	assert.Nil(t, head.Data())
	assert.Nil(t, head.Next())
	assert.Equal(t, 2, h.Stats().Releases)

	assert.True(t, third.IsHead())
	assert.Same(t, third, third.Head())
	assert.Equal(t, 2, length(t, third))

	require.NoError(t, head.Destroy())
	assert.Equal(t, 2, h.Stats().Releases)

	v := "x"
	assert.ErrorIs(t, head.Add(&v), datastructures.ErrReleased)
	_, err := head.Length()
	assert.ErrorIs(t, err, datastructures.ErrReleased)
}

func TestDestroyDetachesFromPredecessor(t *testing.T) {
	h := newHelper()
	head := newChain(t, h, "a", "b")
	middle := head.Next()

	require.NoError(t, middle.Destroy())

	assert.Equal(t, 1, length(t, head))
	assert.Equal(t, 2, h.Stats().Releases)
}

func TestInitialize(t *testing.T) {
	var nilNode *datastructures.Node
	assert.ErrorIs(t, nilNode.Initialize(), datastructures.ErrNilNode)
	assert.ErrorIs(t, nilNode.Destroy(), datastructures.ErrNilNode)

	var n datastructures.Node
	require.NoError(t, n.Initialize())
	assert.True(t, n.IsHead())
	assert.Nil(t, n.Data())
	assert.Zero(t, n.ID())
}

func TestUnownedNodeBuildsChain(t *testing.T) {
	var n datastructures.Node
	require.NoError(t, n.Initialize())

	a, b := "a", "b"
	require.NoError(t, n.Add(&a))
	require.NoError(t, n.AddWithTag(&b, 4))
	require.NoError(t, n.Terminate())

	assert.Equal(t, 4, length(t, &n))
	assert.Equal(t, 4, n.Tag())
	assert.Same(t, &a, n.Next().Data())
}

func TestDump(t *testing.T) {
	head := newChain(t, newHelper(), "hello")
	require.NoError(t, head.Terminate())

	var buf bytes.Buffer
	require.NoError(t, head.Fdump(&buf, head.Next()))
	out := buf.String()
	assert.Contains(t, out, "is hello\n")
	assert.Contains(t, out, "->prev is 0x")
	assert.Contains(t, out, "->next is 0x")

	buf.Reset()
	require.NoError(t, head.Fdump(&buf, head.Next().Next()))
	assert.Contains(t, buf.String(), "is (sentinel)")

	buf.Reset()
	require.NoError(t, head.Fdump(&buf, head))
	assert.Contains(t, buf.String(), "is (nil)")

	assert.ErrorIs(t, head.Fdump(&buf, nil), datastructures.ErrNilNode)
	assert.ErrorIs(t, head.Fdump(nil, head), datastructures.ErrNilArgument)
}

func TestDumpUsesHelperWriter(t *testing.T) {
	var buf bytes.Buffer
	h := datastructures.NewHelper(
		datastructures.WithLogger(utils.NewWriterLogger(io.Discard, io.Discard)),
		datastructures.WithDumpWriter(&buf),
	)
	head := newChain(t, h, "routed")

	require.NoError(t, head.Dump(head.Next()))

	out := buf.String()
	assert.Contains(t, out, "is routed\n")
	assert.Equal(t, 3, strings.Count(out, fmt.Sprintf("list(%p)", head.Next())))
	assert.Contains(t, out, fmt.Sprintf("->prev is %p", head))
	assert.Contains(t, out, "->next is 0x0")
}

func TestDumpRendersStructuredValues(t *testing.T) {
	type point struct{ X, Y int }
	head := newChain(t, newHelper())
	require.NoError(t, head.Add(&point{X: 1, Y: 2}))

	var buf bytes.Buffer
	require.NoError(t, head.Fdump(&buf, head.Next()))
	assert.Contains(t, buf.String(), "X:1")
	assert.Contains(t, buf.String(), "Y:2")
}
