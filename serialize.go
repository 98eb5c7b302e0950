package replus

import "encoding/json"

// Node is the serialized form of a match or group: a nested mapping suitable
// for exchange across process boundaries. Match nodes carry Type; group
// nodes carry Key and Name. Groups maps each base key to that key's
// root-level children, recursively.
type Node struct {
	Type   string             `json:"type,omitempty"`
	Key    string             `json:"key,omitempty"`
	Name   string             `json:"name,omitempty"`
	Offset Span               `json:"offset"`
	Value  string             `json:"value"`
	Groups map[string][]*Node `json:"groups"`
}

// Serialize produces the match's result tree, recursing through each root
// group's own root children.
func (m *Match) Serialize() *Node {
	n := &Node{
		Type:   m.pattern.Type,
		Offset: m.Span(),
		Value:  m.value,
		Groups: make(map[string][]*Node),
	}
	for _, g := range m.RootGroups() {
		n.Groups[g.key] = append(n.Groups[g.key], g.Serialize())
	}
	return n
}

// JSON returns the serialized match as compact JSON.
func (m *Match) JSON() (string, error) {
	return marshal(m.Serialize())
}

// Serialize produces the group's subtree.
func (g *Group) Serialize() *Node {
	n := &Node{
		Key:    g.key,
		Name:   g.name,
		Offset: g.Span(),
		Value:  g.value,
		Groups: make(map[string][]*Node),
	}
	for _, child := range g.RootGroups() {
		n.Groups[child.key] = append(n.Groups[child.key], child.Serialize())
	}
	return n
}

// JSON returns the serialized group as compact JSON.
func (g *Group) JSON() (string, error) {
	return marshal(g.Serialize())
}

func marshal(n *Node) (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
