package bvh

import (
	"encoding/binary"
	"math"
)

// Matches the WGSL layout, W = branching factor:
//
//	struct Header {
//	   root_index : u32;
//	   root_count : u32;
//	   width      : u32;
//	   node_count : u32;
//	}; -> 16 bytes
//
//	struct WideNode {
//	   min_x, min_y, min_z : array<f32, W>;
//	   max_x, max_y, max_z : array<f32, W>;
//	   children : array<vec2<u32>, W>; (index, count)
//	}; -> 32*W bytes
const HeaderSize = 16

func NodeSize(width int) int {
	return 32 * width
}

func (n *Node) ToBytes(width int) []byte {
	buf := make([]byte, NodeSize(width))
	n.putBytes(buf, width)
	return buf
}

func (n *Node) putBytes(buf []byte, width int) {
	off := 0
	putFloats := func(v *[MaxWidth]float32) {
		for i := 0; i < width; i++ {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v[i]))
			off += 4
		}
	}
	putFloats(&n.MinX)
	putFloats(&n.MinY)
	putFloats(&n.MinZ)
	putFloats(&n.MaxX)
	putFloats(&n.MaxY)
	putFloats(&n.MaxZ)
	for i := 0; i < width; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], n.Children[i].Index)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], n.Children[i].Count)
		off += 8
	}
}

// NodesBytes encodes the header followed by every node.
func (t *Tree) NodesBytes() []byte {
	width := t.cfg.BranchingFactor
	stride := NodeSize(width)
	out := make([]byte, HeaderSize+stride*len(t.nodes))

	binary.LittleEndian.PutUint32(out[0:4], t.root.Index)
	binary.LittleEndian.PutUint32(out[4:8], t.root.Count)
	binary.LittleEndian.PutUint32(out[8:12], uint32(width))
	binary.LittleEndian.PutUint32(out[12:16], uint32(len(t.nodes)))

	for i := range t.nodes {
		off := HeaderSize + i*stride
		t.nodes[i].putBytes(out[off:off+stride], width)
	}
	return out
}
