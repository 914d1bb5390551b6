package model

import (
	"fmt"

	"github.com/agenthands/kinship/internal/core/common"
)

type NodeType string

const (
	NodeTypeSurname NodeType = "surname"
	NodeTypePerson  NodeType = "person"
)

// Node is a persisted graph vertex. ID is the surname or person name text and is
// unique within a graph.
type Node struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	Length int      `json:"length,omitempty"` // surname nodes only: linked persons
	Color  string   `json:"color,omitempty"`
}

func (n Node) IsSurname() bool {
	return n.Type == NodeTypeSurname
}

const (
	BaseRadius  = 2.0
	PersonColor = "#f4f4f4"
)

// SimNode carries the transient layout state a renderer needs on top of a persisted
// Node. It embeds the Node; the Node never embeds it.
type SimNode struct {
	Node
	DOMID  string  `json:"domId"`
	Fill   string  `json:"fill"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

func NewSimNode(n Node) SimNode {
	fill := n.Color
	if fill == "" {
		fill = PersonColor
	}
	return SimNode{
		Node:   n,
		DOMID:  common.ToDOMID(n.ID),
		Fill:   fill,
		Radius: radius(n),
		Label:  label(n),
	}
}

// radius grows with the number of persons linked to a surname.
func radius(n Node) float64 {
	if n.Length == 0 {
		return BaseRadius
	}
	return BaseRadius + float64(n.Length)/4
}

func label(n Node) string {
	if n.Length == 0 {
		return n.ID
	}
	return fmt.Sprintf("%s (%d)", n.ID, n.Length)
}
