package core

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// SnowflakeIDs issues snowflake identifiers: millisecond timestamp, node and
// sequence packed into an int64, increasing per node.
type SnowflakeIDs struct {
	node *snowflake.Node
}

// NewSnowflakeIDs returns a generator for node (0-1023).
func NewSnowflakeIDs(node int64) (*SnowflakeIDs, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &SnowflakeIDs{node: n}, nil
}

// NextID implements IDGenerator.
func (g *SnowflakeIDs) NextID() int64 {
	return g.node.Generate().Int64()
}
