package romon

import "bytes"

var (
	idA = NodeID{0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa}
	idB = NodeID{0xbb, 0xbb, 0xbb, 0xbb, 0xbb, 0xbb}
	idC = NodeID{0x00, 0x0c, 0x42, 0x01, 0x02, 0x03}
	idD = NodeID{0x4c, 0x5e, 0x0c, 0x11, 0x22, 0x33}
)

// rawHeader builds the fixed header with a zero reserved block.
func rawHeader(subtype [2]byte, frameLen uint16, src, dst NodeID) []byte {
	b := []byte{subtype[0], subtype[1], byte(frameLen >> 8), byte(frameLen)}
	b = append(b, make([]byte, HeaderReservedLen)...)
	b = append(b, src[:]...)
	b = append(b, dst[:]...)
	return b
}

func rawHop(link uint32, node NodeID) []byte {
	b := []byte{byte(link >> 24), byte(link >> 16), byte(link >> 8), byte(link)}
	return append(b, node[:]...)
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func countMarked(t Trace) int {
	n := 0
	for _, l := range t {
		if len(l) >= 4 && l[len(l)-4:] == " <--" {
			n++
		}
	}
	return n
}
