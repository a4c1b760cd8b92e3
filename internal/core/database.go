package core

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vskvj3/liblist/internal/datastructures"
)

// Database holds named chains. The chains themselves are single-writer, so
// every access goes through mu.
type Database struct {
	mu     sync.Mutex
	helper *datastructures.Helper
	lists  map[string]*datastructures.Node
}

// Create a new database instance
func NewDatabase(opts ...datastructures.Option) *Database {
	return &Database{
		helper: datastructures.NewHelper(opts...),
		lists:  make(map[string]*datastructures.Node),
	}
}

// Create allocates an empty chain under name
func (db *Database) Create(name string) error {
	if name == "" {
		return errors.New("list name cannot be empty")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, exists := db.lists[name]; exists {
		return fmt.Errorf("list %q already exists", name)
	}
	head, err := db.helper.NewList()
	if err != nil {
		return err
	}
	db.lists[name] = head
	return nil
}

// Add appends value to the named chain
func (db *Database) Add(name, value string) error {
	if value == "" {
		return errors.New("value cannot be empty")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return err
	}
	return head.Add(&value)
}

// AddWithTag appends value and tags either the head or the new node
func (db *Database) AddWithTag(name, value string, tag int, tail bool) error {
	if value == "" {
		return errors.New("value cannot be empty")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return err
	}
	if tail {
		return head.AppendTagged(&value, tag)
	}
	return head.AddWithTag(&value, tag)
}

// Tag labels the head of the named chain, or its tail
func (db *Database) Tag(name string, tag int, tail bool) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return err
	}
	if tail {
		return head.TagTail(tag)
	}
	return head.AddTag(tag)
}

// Terminate appends a sentinel to the named chain
func (db *Database) Terminate(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return err
	}
	return head.Terminate()
}

// Length returns the node count of the named chain, head included
func (db *Database) Length(name string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return 0, err
	}
	return head.Length()
}

// Find searches the named chain for tag. With strict set the tail is
// inspected too. The value of the matching node is returned.
func (db *Database) Find(name string, tag int, strict bool) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return "", false, err
	}

	var node *datastructures.Node
	var found bool
	if strict {
		node, found, err = db.helper.Lookup(head, tag)
	} else {
		node, found, err = db.helper.FindByTag(head, tag)
	}
	if err != nil || !found {
		return "", false, err
	}
	return valueOf(node), true, nil
}

// Reverse reverses the named chain in place
func (db *Database) Reverse(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return err
	}
	newHead, err := db.helper.Reverse(head)
	if err != nil {
		return err
	}
	db.lists[name] = newHead
	return nil
}

// Values returns the stored values of the named chain in order
func (db *Database) Values(name string) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return nil, err
	}
	refs, err := head.Values()
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(refs))
	for _, ref := range refs {
		if s, ok := ref.(*string); ok {
			values = append(values, *s)
		}
	}
	return values, nil
}

// Dump writes the diagnostic state of every node of the named chain to w
func (db *Database) Dump(name string, w io.Writer) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("dump %q: %w", name, datastructures.ErrNilArgument)
	}

	var dumpErr error
	err = head.Foreach(func(self, node *datastructures.Node, _ interface{}) {
		if dumpErr == nil {
			dumpErr = self.Fdump(w, node)
		}
	}, nil)
	if err != nil {
		return err
	}
	return dumpErr
}

// Drop tears down the named chain
func (db *Database) Drop(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	head, err := db.get(name)
	if err != nil {
		return err
	}
	if err := db.helper.DestroyList(head); err != nil {
		return err
	}
	delete(db.lists, name)
	return nil
}

// Names returns the chain names in sorted order
func (db *Database) Names() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	names := make([]string, 0, len(db.lists))
	for name := range db.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns the node allocation ledger
func (db *Database) Stats() datastructures.Stats {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.helper.Stats()
}

// Close tears down every chain and releases the helper
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	var errs []error
	for name, head := range db.lists {
		if err := db.helper.DestroyList(head); err != nil {
			errs = append(errs, fmt.Errorf("drop %q: %w", name, err))
		}
		delete(db.lists, name)
	}
	if err := db.helper.Destroy(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (db *Database) get(name string) (*datastructures.Node, error) {
	if name == "" {
		return nil, errors.New("list name cannot be empty")
	}
	head, exists := db.lists[name]
	if !exists {
		return nil, fmt.Errorf("list %q not found", name)
	}
	return head, nil
}

func valueOf(node *datastructures.Node) string {
	if s, ok := node.Data().(*string); ok && s != nil {
		return *s
	}
	return ""
}
