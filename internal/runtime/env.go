package runtime

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Env holds the variables a runtime reported through `go env`, in the order
// they were reported. Keys are unique; setting an existing key keeps its
// position.
type Env struct {
	pairs *orderedmap.OrderedMap[string, string]
}

func NewEnv() *Env {
	return &Env{pairs: orderedmap.New[string, string]()}
}

func (e *Env) Set(key, value string) {
	if e.pairs == nil {
		e.pairs = orderedmap.New[string, string]()
	}
	e.pairs.Set(key, value)
}

func (e *Env) Get(key string) (string, bool) {
	if e == nil || e.pairs == nil {
		return "", false
	}
	return e.pairs.Get(key)
}

// Clone returns an independent copy; nil stays nil.
func (e *Env) Clone() *Env {
	if e == nil {
		return nil
	}
	out := NewEnv()
	if e.pairs != nil {
		for p := e.pairs.Oldest(); p != nil; p = p.Next() {
			out.pairs.Set(p.Key, p.Value)
		}
	}
	return out
}

func (e *Env) Len() int {
	if e == nil || e.pairs == nil {
		return 0
	}
	return e.pairs.Len()
}

// Keys returns the keys in reported order.
func (e *Env) Keys() []string {
	if e == nil || e.pairs == nil {
		return nil
	}
	out := make([]string, 0, e.pairs.Len())
	for p := e.pairs.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

func (e *Env) MarshalJSON() ([]byte, error) {
	if e == nil || e.pairs == nil {
		return []byte("{}"), nil
	}
	return e.pairs.MarshalJSON()
}

func (e *Env) UnmarshalJSON(b []byte) error {
	e.pairs = orderedmap.New[string, string]()
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	return e.pairs.UnmarshalJSON(b)
}

// MarshalYAML keeps the reported order, which a plain map would lose.
func (e *Env) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if e == nil || e.pairs == nil {
		return node, nil
	}
	for p := e.pairs.Oldest(); p != nil; p = p.Next() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Value},
		)
	}
	return node, nil
}

// orderedSet is a sequence with a membership index: the first occurrence of
// an item fixes its rank, later duplicates are dropped.
type orderedSet struct {
	items *orderedmap.OrderedMap[string, struct{}]
}

func newOrderedSet() *orderedSet {
	return &orderedSet{items: orderedmap.New[string, struct{}]()}
}

func (s *orderedSet) Add(items ...string) {
	for _, it := range items {
		if _, seen := s.items.Get(it); seen {
			continue
		}
		s.items.Set(it, struct{}{})
	}
}

func (s *orderedSet) Items() []string {
	out := make([]string, 0, s.items.Len())
	for p := s.items.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}
