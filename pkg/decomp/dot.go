package decomp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/matzehuels/rankwidth/pkg/bitset"
)

// WidthFunc returns the width of the cut described by part.
type WidthFunc func(part *bitset.BitSet, count int) int

// ToDOT renders d as an undirected DOT graph. Leaves are named
// leaf_<label>, internal nodes node_<uid>, and every edge is labeled with
// its width.
func (d *Decomposition) ToDOT(label func(v int) string, width WidthFunc) string {
	var buf bytes.Buffer
	buf.WriteString("graph decomposition {\n")
	d.FindEdgePartitions(func(part *bitset.BitSet, count int, a, b NodeID) {
		fmt.Fprintf(&buf, "  %q -- %q [label=%d];\n", d.nodeName(a, label), d.nodeName(b, label), width(part, count))
	}, -1)
	buf.WriteString("}\n")
	return buf.String()
}

// WriteDOT writes the output of ToDOT to w.
func (d *Decomposition) WriteDOT(w io.Writer, label func(v int) string, width WidthFunc) error {
	_, err := io.WriteString(w, d.ToDOT(label, width))
	return err
}

func (d *Decomposition) nodeName(id NodeID, label func(v int) string) string {
	if d.IsLeaf(id) {
		return "leaf_" + label(d.nodes[id].vertex)
	}
	return fmt.Sprintf("node_%d", d.nodes[id].uid)
}
