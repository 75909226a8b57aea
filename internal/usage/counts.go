package usage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoApps is returned when percentages are requested for an empty corpus.
var ErrNoApps = errors.New("number of applications must be positive")

// Counts is a syscall -> application count table that keeps the order of
// the status sheet it was seeded from.
type Counts struct {
	names  []string
	values map[string]int
}

// NewCounts seeds a table with every name at zero.
func NewCounts(names []string) *Counts {
	c := &Counts{values: make(map[string]int, len(names))}
	for _, n := range names {
		if _, ok := c.values[n]; ok {
			continue
		}
		c.values[n] = 0
		c.names = append(c.names, n)
	}
	return c
}

// Has reports whether name is part of the table.
func (c *Counts) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Inc adds one to name. It returns false for names outside the table.
func (c *Counts) Inc(name string) bool {
	if !c.Has(name) {
		return false
	}
	c.values[name]++
	return true
}

// Set overwrites the count for name. It returns false for names outside the table.
func (c *Counts) Set(name string, v int) bool {
	if !c.Has(name) {
		return false
	}
	c.values[name] = v
	return true
}

// Get returns the count for name.
func (c *Counts) Get(name string) int { return c.values[name] }

// Names returns the table keys in sheet order.
func (c *Counts) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of rows.
func (c *Counts) Len() int { return len(c.names) }

// MarshalJSON encodes the table as a JSON object in sheet order.
func (c *Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		fmt.Fprintf(&buf, ":%d", c.values[n])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Percentages returns count/nbApps*100 for every row in sheet order.
func Percentages(c *Counts, nbApps int) ([]float64, error) {
	if nbApps <= 0 {
		return nil, ErrNoApps
	}
	out := make([]float64, len(c.names))
	for i, n := range c.names {
		out[i] = float64(c.values[n]) / float64(nbApps) * 100
	}
	return out, nil
}
