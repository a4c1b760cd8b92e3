package datastructures

import (
	"io"
	"os"

	"github.com/vskvj3/liblist/internal/utils"
)

type (
	// Helper allocates chains and runs the operations that span a whole
	// chain. It keeps a ledger of the nodes it allocated and released.
	Helper struct {
		logger    *utils.Logger
		dump      io.Writer
		nextID    uint64
		stats     Stats
		destroyed bool
	}

	// Stats counts node allocations and releases made through a Helper.
	Stats struct {
		Allocations int
		Releases    int
	}

	// Option configures a Helper.
	Option func(*Helper)
)

// Live returns the number of allocated nodes not yet released.
func (s Stats) Live() int { return s.Allocations - s.Releases }

// WithLogger routes failure diagnostics to logger instead of the global one.
func WithLogger(logger *utils.Logger) Option {
	return func(h *Helper) { h.logger = logger }
}

// WithDumpWriter sets where Dump writes. The default is stdout.
func WithDumpWriter(w io.Writer) Option {
	return func(h *Helper) { h.dump = w }
}

// NewHelper creates a new helper.
func NewHelper(opts ...Option) *Helper {
	h := &Helper{dump: os.Stdout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewList allocates an empty one-node chain.
func (h *Helper) NewList() (*Node, error) {
	node, err := h.alloc()
	if err != nil {
		return nil, fail(h, "new list", err)
	}
	return node, nil
}

// Last returns the tail of the chain starting at list.
func (h *Helper) Last(list *Node) (*Node, error) {
	if err := h.check("last", list); err != nil {
		return nil, err
	}
	return list.last(), nil
}

// DestroyList releases every node from list to the tail exactly once, tail
// first. If list is not a head it is detached from its predecessor.
func (h *Helper) DestroyList(list *Node) error {
	if h == nil || h.destroyed {
		return fail(nil, "destroy list", ErrNilHelper)
	}
	if list == nil {
		return fail(h, "destroy list", ErrNilNode)
	}
	if list.released {
		return nil
	}

	if list.prev != nil {
		list.prev.next = nil
		list.prev = nil
	}

	count := 0
	for p := list; p != nil; p = p.next {
		count++
	}

	nodes := NewDeque[*Node](count)
	for p := list; p != nil; p = p.next {
		if err := nodes.PushBack(p); err != nil {
			return fail(h, "destroy list", err)
		}
	}
	for !nodes.Empty() {
		node, err := nodes.PopBack()
		if err != nil {
			return fail(h, "destroy list", err)
		}
		release(node)
	}
	return nil
}

// FindByTag walks forward from list and stops at the first node carrying tag.
// The walk stops on the tail without inspecting it, so it always returns a
// node: the match, or the tail. matched reports whether an inspected node
// carried tag; a tag held only by the tail is never matched. Lookup is the
// search that inspects the tail too.
func (h *Helper) FindByTag(list *Node, tag int) (node *Node, matched bool, err error) {
	if err := h.check("find by tag", list); err != nil {
		return nil, false, err
	}

	p := list
	for p.next != nil {
		if p.tag == tag {
			return p, true, nil
		}
		p = p.next
	}
	return p, false, nil
}

// Lookup returns the first node from list to the tail inclusive that carries
// tag, and false if there is none.
func (h *Helper) Lookup(list *Node, tag int) (*Node, bool, error) {
	if err := h.check("lookup", list); err != nil {
		return nil, false, err
	}

	for p := list; p != nil; p = p.next {
		if p.tag == tag {
			return p, true, nil
		}
	}
	return nil, false, nil
}

// Reverse reverses the chain headed by list in place and returns the new head.
func (h *Helper) Reverse(list *Node) (*Node, error) {
	if err := h.check("reverse", list); err != nil {
		return nil, err
	}
	if list.prev != nil {
		return nil, fail(h, "reverse", ErrNotHead)
	}

	p := list
	for {
		p.prev, p.next = p.next, p.prev
		if p.prev == nil {
			break
		}
		p = p.prev
	}
	rehead(p)
	return p, nil
}

// Stats returns the allocation ledger.
func (h *Helper) Stats() Stats {
	if h == nil {
		return Stats{}
	}
	return h.stats
}

// Destroy releases the helper. Later calls on it fail with ErrNilHelper.
func (h *Helper) Destroy() error {
	if h == nil || h.destroyed {
		return fail(nil, "destroy helper", ErrNilHelper)
	}
	*h = Helper{destroyed: true}
	return nil
}

func (h *Helper) alloc() (*Node, error) {
	if h == nil || h.destroyed {
		return nil, ErrNilHelper
	}

	h.nextID++
	node := &Node{owner: h, id: h.nextID}
	if err := node.Initialize(); err != nil {
		return nil, err
	}
	h.stats.Allocations++
	return node, nil
}

func (h *Helper) check(op string, list *Node) error {
	if h == nil || h.destroyed {
		return fail(nil, op, ErrNilHelper)
	}
	if list == nil {
		return fail(h, op, ErrNilNode)
	}
	if list.released {
		return fail(h, op, ErrReleased)
	}
	return nil
}
