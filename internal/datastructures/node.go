package datastructures

import (
	"fmt"
	"reflect"

	"github.com/vskvj3/liblist/internal/utils"
)

type (
	// Cell is the pointer-sized storage a node owns. It holds the caller's
	// reference, never a copy of the referenced value.
	Cell struct {
		ref interface{}
	}

	// Node is an element of a doubly linked chain. A node whose prev is nil
	// is the head of its chain.
	Node struct {
		cell     *Cell
		tag      int
		prev     *Node
		next     *Node
		head     *Node
		owner    *Helper
		id       uint64
		sentinel bool
		released bool
	}

	// VisitFunc is invoked by Foreach with the chain head, the current node
	// and the caller's argument (nil when none was supplied).
	VisitFunc func(head, node *Node, arg interface{})
)

// Initialize allocates the node's indirection cell.
func (n *Node) Initialize() error {
	if n == nil {
		return fail(nil, "initialize", ErrNilNode)
	}
	n.cell = &Cell{}
	n.released = false
	if n.head == nil && n.prev == nil {
		n.head = n
	}
	return nil
}

// Destroy releases the node's cell and the node its next link refers to, then
// zeroes the node. The nodes past the released successor become a chain of
// their own. Destroying a released node is a no-op.
func (n *Node) Destroy() error {
	if n == nil {
		return fail(nil, "destroy", ErrNilNode)
	}
	if n.released {
		return nil
	}

	if n.prev != nil {
		n.prev.next = nil
	}
	if succ := n.next; succ != nil {
		if rest := succ.next; rest != nil {
			rest.prev = nil
			rehead(rest)
		}
		release(succ)
	}
	release(n)
	return nil
}

// Join appends the chain starting at target onto the tail of n. If target
// sits inside another chain it is detached from its predecessor first.
func (n *Node) Join(target *Node) error {
	if err := n.checkHead("join"); err != nil {
		return err
	}
	if target == nil {
		return fail(n.owner, "join", ErrNilNode)
	}
	if target.released {
		return fail(n.owner, "join", ErrReleased)
	}
	if target == n || target.Head() == n {
		return fail(n.owner, "join", ErrSameChain)
	}

	if target.prev != nil {
		target.prev.next = nil
		target.prev = nil
	}

	tail := n.last()
	tail.next = target
	target.prev = tail
	for p := target; p != nil; p = p.next {
		p.head = n
	}
	return nil
}

// Add wraps value in a fresh node and appends it to the chain. The node
// holds the reference, not a copy, so value must be a non-nil pointer.
func (n *Node) Add(value interface{}) error {
	if err := n.checkHead("add"); err != nil {
		return err
	}
	if err := checkValue(value); err != nil {
		return fail(n.owner, "add", err)
	}

	node, err := n.spawn()
	if err != nil {
		return fail(n.owner, "add", err)
	}
	node.cell.ref = value
	return n.Join(node)
}

// SetTag labels this node.
func (n *Node) SetTag(tag int) error {
	if n == nil {
		return fail(nil, "set tag", ErrNilNode)
	}
	n.tag = tag
	return nil
}

// AddTag labels the head of the chain. Callers that want the most recently
// appended node labelled use TagTail.
func (n *Node) AddTag(tag int) error {
	if err := n.checkHead("add tag"); err != nil {
		return err
	}
	return n.SetTag(tag)
}

// TagTail labels the last node of the chain.
func (n *Node) TagTail(tag int) error {
	if err := n.checkHead("tag tail"); err != nil {
		return err
	}
	return n.last().SetTag(tag)
}

// AddWithTag appends value and then labels the head with tag.
func (n *Node) AddWithTag(value interface{}, tag int) error {
	if err := n.checkHead("add with tag"); err != nil {
		return err
	}
	if err := checkValue(value); err != nil {
		return fail(n.owner, "add with tag", err)
	}
	if err := n.Add(value); err != nil {
		return err
	}
	return n.AddTag(tag)
}

// checkValue accepts non-nil pointers only.
func checkValue(value interface{}) error {
	if value == nil {
		return ErrNilArgument
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Pointer && v.Kind() != reflect.UnsafePointer {
		return ErrNotReference
	}
	if v.IsNil() {
		return ErrNilArgument
	}
	return nil
}

// AppendTagged appends value in a node that carries tag.
func (n *Node) AppendTagged(value interface{}, tag int) error {
	if err := n.checkHead("append tagged"); err != nil {
		return err
	}
	if err := checkValue(value); err != nil {
		return fail(n.owner, "append tagged", err)
	}

	node, err := n.spawn()
	if err != nil {
		return fail(n.owner, "append tagged", err)
	}
	node.cell.ref = value
	node.tag = tag
	return n.Join(node)
}

// Terminate appends an empty sentinel node. The sentinel is allocated like
// any other node and lives as long as the chain.
func (n *Node) Terminate() error {
	if err := n.checkHead("terminate"); err != nil {
		return err
	}

	sentinel, err := n.spawn()
	if err != nil {
		return fail(n.owner, "terminate", err)
	}
	sentinel.sentinel = true
	return n.Join(sentinel)
}

// Foreach calls fn once per node, head first, tail included.
func (n *Node) Foreach(fn VisitFunc, arg interface{}) error {
	if err := n.checkHead("foreach"); err != nil {
		return err
	}
	if fn == nil {
		return fail(n.owner, "foreach", ErrNilArgument)
	}

	for p := n; p != nil; {
		next := p.next
		fn(n, p, arg)
		p = next
	}
	return nil
}

// Length returns the number of nodes from the head to the tail inclusive.
func (n *Node) Length() (int, error) {
	if err := n.checkHead("length"); err != nil {
		return -1, err
	}

	length := 1
	for p := n; p.next != nil; p = p.next {
		length++
	}
	return length, nil
}

// Values returns the data references of the chain in forward order.
// Sentinels and nodes that never received a value are skipped.
func (n *Node) Values() ([]interface{}, error) {
	if err := n.checkHead("values"); err != nil {
		return nil, err
	}

	var values []interface{}
	for p := n; p != nil; p = p.next {
		if p.sentinel || p.cell == nil || p.cell.ref == nil {
			continue
		}
		values = append(values, p.cell.ref)
	}
	return values, nil
}

// Data returns the reference held in the node's cell.
func (n *Node) Data() interface{} {
	if n == nil || n.cell == nil {
		return nil
	}
	return n.cell.ref
}

func (n *Node) Tag() int {
	if n == nil {
		return 0
	}
	return n.tag
}

func (n *Node) Prev() *Node {
	if n == nil {
		return nil
	}
	return n.prev
}

func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	return n.next
}

// Head returns the head of the chain n belongs to.
func (n *Node) Head() *Node {
	if n == nil {
		return nil
	}
	if n.head == nil {
		return n
	}
	return n.head
}

func (n *Node) IsHead() bool { return n != nil && n.prev == nil }

func (n *Node) IsSentinel() bool { return n != nil && n.sentinel }

// ID returns the identifier assigned by the owning helper, or 0.
func (n *Node) ID() uint64 {
	if n == nil {
		return 0
	}
	return n.id
}

func (n *Node) Released() bool { return n != nil && n.released }

// checkHead validates the receiver of a head-anchored operation.
func (n *Node) checkHead(op string) error {
	if n == nil {
		return fail(nil, op, ErrNilNode)
	}
	if n.released {
		return fail(n.owner, op, ErrReleased)
	}
	if n.prev != nil {
		return fail(n.owner, op, ErrNotHead)
	}
	return nil
}

// spawn allocates a node with the same owner as n.
func (n *Node) spawn() (*Node, error) {
	if n.owner != nil {
		return n.owner.alloc()
	}
	node := &Node{}
	if err := node.Initialize(); err != nil {
		return nil, err
	}
	return node, nil
}

func (n *Node) last() *Node {
	p := n
	for p.next != nil {
		p = p.next
	}
	return p
}

// rehead makes start the cached head of every node reachable from it.
func rehead(start *Node) {
	for p := start; p != nil; p = p.next {
		p.head = start
	}
}

// release frees the node's cell and zeroes it. It reports whether the node
// was live.
func release(n *Node) bool {
	if n == nil || n.released {
		return false
	}
	owner := n.owner
	*n = Node{released: true}
	if owner != nil {
		owner.stats.Releases++
	}
	return true
}

// fail logs a failed operation and wraps err with the operation name.
func fail(h *Helper, op string, err error) error {
	loggerFor(h).Debug(fmt.Sprintf("%s failed: %v", op, err))
	return fmt.Errorf("%s: %w", op, err)
}

func loggerFor(h *Helper) *utils.Logger {
	if h != nil && h.logger != nil {
		return h.logger
	}
	return utils.GetLogger()
}
