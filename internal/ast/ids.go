package ast

type (
	// NodeID indexes Nodes.Arena.
	NodeID uint32
	// PayloadID indexes one of the per-kind payload arenas.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
