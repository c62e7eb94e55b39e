package layout

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
)

// EdgeShape is the shape tag carried by every edge record.
const EdgeShape = "bpmn-edge"

// Record is one element of a laid-out diagram: a [NodeRecord] or an
// [EdgeRecord].
type Record interface {
	RecordID() bpmn.ID
	isRecord()
}

// =============================================================================
// Node records
// =============================================================================

// Position is the top-left corner of a node box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Attrs carries cosmetic style hints keyed by selector, e.g.
// {"body": {"strokeWidth": 4}}. It never affects geometry.
type Attrs map[string]map[string]any

// NodeRecord is a positioned, sized node.
type NodeRecord struct {
	ID       bpmn.ID  `json:"id"`
	Shape    string   `json:"shape"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Position Position `json:"position"`
	Label    string   `json:"label,omitempty"`
	Attrs    Attrs    `json:"attrs,omitempty"`
}

// RecordID returns the node id.
func (n NodeRecord) RecordID() bpmn.ID { return n.ID }
func (NodeRecord) isRecord()           {}

// Right returns the x coordinate of the node's right edge.
func (n NodeRecord) Right() float64 { return n.Position.X + n.Width }

// Bottom returns the y coordinate of the node's bottom edge.
func (n NodeRecord) Bottom() float64 { return n.Position.Y + n.Height }

// =============================================================================
// Edge records
// =============================================================================

// EdgeRecord is a styled edge with a minted id.
type EdgeRecord struct {
	ID     bpmn.ID `json:"id"`
	Shape  string  `json:"shape"`
	Source bpmn.ID `json:"source"`
	Target bpmn.ID `json:"target"`
}

// RecordID returns the edge id.
func (e EdgeRecord) RecordID() bpmn.ID { return e.ID }
func (EdgeRecord) isRecord()           {}

// =============================================================================
// Record lists
// =============================================================================

// Records is an ordered list of render records.
type Records []Record

// Nodes returns the node records in order.
func (rs Records) Nodes() []NodeRecord {
	var nodes []NodeRecord
	for _, r := range rs {
		if n, ok := r.(NodeRecord); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Edges returns the edge records in order.
func (rs Records) Edges() []EdgeRecord {
	var edges []EdgeRecord
	for _, r := range rs {
		if e, ok := r.(EdgeRecord); ok {
			edges = append(edges, e)
		}
	}
	return edges
}

// MaxIntID returns the largest integer id in the list, counting string ids
// that parse as integers, or 0 if there is none.
func (rs Records) MaxIntID() int64 {
	var max int64
	for _, r := range rs {
		if v, ok := r.RecordID().Int(); ok && v > max {
			max = v
		}
	}
	return max
}

// UnmarshalJSON decodes a JSON array of records. Elements whose shape is
// [EdgeShape] become edge records; everything else is a node record.
func (rs *Records) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Records, 0, len(raw))
	for i, msg := range raw {
		var head struct {
			Shape string `json:"shape"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		if head.Shape == EdgeShape {
			var e EdgeRecord
			if err := json.Unmarshal(msg, &e); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			out = append(out, e)
			continue
		}

		var n NodeRecord
		if err := json.Unmarshal(msg, &n); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, n)
	}
	*rs = out
	return nil
}
