package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeCells encodes a fog-of-war cell grid into base64(varint pairs).
// The pairs are (cell_value, run_len) repeated. Unexplored space dominates
// most grids, so runs stay long and the encoding small.
func EncodeCells(cells []int32) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(cells) {
		c := cells[i]
		run := 1
		for j := i + 1; j < len(cells) && cells[j] == c && run < 1<<31; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(uint32(c)))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeCells(b64 string) ([]int32, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []int32
	for i := 0; i < len(raw); {
		c, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if c > 0xFFFFFFFF {
			return nil, fmt.Errorf("cell value too large: %d", c)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, int32(uint32(c)))
		}
	}
	return out, nil
}
