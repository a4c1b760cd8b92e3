package datastructures

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// Dump prints node's data and links to the helper's dump writer, or stdout
// when n has no helper.
func (n *Node) Dump(node *Node) error {
	var w io.Writer = os.Stdout
	if n != nil && n.owner != nil && n.owner.dump != nil {
		w = n.owner.dump
	}
	return n.Fdump(w, node)
}

// Fdump writes node's data and links to w. The output is for humans only.
func (n *Node) Fdump(w io.Writer, node *Node) error {
	if n == nil || node == nil {
		return fail(nil, "dump", ErrNilNode)
	}
	if w == nil {
		return fail(n.owner, "dump", ErrNilArgument)
	}

	var cell *Cell
	if !node.released {
		cell = node.cell
	}
	if _, err := fmt.Fprintf(w, "list(%p)->data(%p) is %s\n", node, cell, describe(node)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "list(%p)->prev is %p\n", node, node.prev); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "list(%p)->next is %p\n", node, node.next)
	return err
}

var valueFormat = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func describe(node *Node) string {
	switch {
	case node.released:
		return "(released)"
	case node.sentinel:
		return "(sentinel)"
	}

	switch v := node.Data().(type) {
	case nil:
		return "(nil)"
	case *string:
		if v == nil {
			return "(nil)"
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return valueFormat.Sprintf("%+v", v)
	}
}
