package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when decoded JSON is valid but not an object.
var ErrNotObject = errors.New("inventory data is not a JSON object")

// Item is a single inventory entry.
type Item struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Inventory maps item names to quantities and remembers insertion order.
type Inventory struct {
	quantities map[string]int
	names      []string
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		quantities: map[string]int{},
		names:      []string{},
	}
}

// Get returns the quantity stored for name and whether it exists.
func (inv *Inventory) Get(name string) (int, bool) {
	qty, ok := inv.quantities[name]
	return qty, ok
}

// Set stores qty for name, appending name to the iteration order if new.
func (inv *Inventory) Set(name string, qty int) {
	if _, ok := inv.quantities[name]; !ok {
		inv.names = append(inv.names, name)
	}
	inv.quantities[name] = qty
}

// Delete removes name from the inventory.
func (inv *Inventory) Delete(name string) {
	if _, ok := inv.quantities[name]; !ok {
		return
	}
	delete(inv.quantities, name)
	for i, n := range inv.names {
		if n == name {
			inv.names = append(inv.names[:i], inv.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of items.
func (inv *Inventory) Len() int {
	return len(inv.names)
}

// Items returns a copy of the entries in insertion order.
func (inv *Inventory) Items() []Item {
	items := make([]Item, 0, len(inv.names))
	for _, n := range inv.names {
		items = append(items, Item{Name: n, Quantity: inv.quantities[n]})
	}
	return items
}

// Clone returns an independent copy.
func (inv *Inventory) Clone() *Inventory {
	c := NewInventory()
	for _, it := range inv.Items() {
		c.Set(it.Name, it.Quantity)
	}
	return c
}

// MarshalJSON encodes the inventory as an object, keys in insertion order.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, it := range inv.Items() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(it.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", it.Quantity)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of integer quantities, keeping key order.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	decoded := NewInventory()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("could not decode quantity of %q: %w", name, err)
		}
		num, ok := v.(json.Number)
		if !ok {
			return fmt.Errorf("quantity of %q is not a number", name)
		}
		qty, err := num.Int64()
		if err != nil {
			return fmt.Errorf("quantity of %q is not an integer: %w", name, err)
		}
		decoded.Set(name, int(qty))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*inv = *decoded
	return nil
}
