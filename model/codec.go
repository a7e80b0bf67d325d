package model

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/xxh3"
)

// Magic is the signature at the start of every table file.
const Magic = "SPEC"

// Compression selects the container used by EncodeCompressed.
type Compression uint8

const (
	// None writes the raw table.
	None Compression = iota
	// Zstd wraps the table in a zstd frame.
	Zstd
	// XZ wraps the table in an xz stream.
	XZ
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Decode reads an uncompressed table from r.
func Decode(r io.Reader) (*Table, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:4]); err != nil {
		return nil, truncated(err)
	}
	if string(hdr[:4]) != Magic {
		return nil, ErrBadMagic
	}
	if _, err := io.ReadFull(r, hdr[4:]); err != nil {
		return nil, truncated(err)
	}

	res := binary.LittleEndian.Uint32(hdr[4:])
	if res < 2 || res > MaxResolution {
		return nil, fmt.Errorf("%w: %d", ErrResolution, res)
	}

	// Memory grows with the bytes actually read, not with the declared res.
	n := int(res) + dataLen(int(res))
	var payload bytes.Buffer
	if _, err := io.CopyN(&payload, r, int64(4*n)); err != nil {
		return nil, truncated(err)
	}
	raw := payload.Bytes()

	floats := make([]float32, n)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	scale := floats[:res:res]
	for i := 1; i < len(scale); i++ {
		if !(scale[i] > scale[i-1]) {
			return nil, fmt.Errorf("%w at index %d", ErrScale, i)
		}
	}

	return &Table{
		res:   int(res),
		scale: scale,
		data:  floats[res:],
		sum:   xxh3.Hash(raw),
	}, nil
}

// Read decodes a table from r, transparently decompressing zstd and xz
// input.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(xzMagic))

	switch {
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("model: zstd: %w", err)
		}
		defer zr.Close()
		return Decode(zr)
	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("model: xz: %w", err)
		}
		return Decode(xr)
	}
	return Decode(br)
}

// Open reads the table stored in the named file.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Encode writes t in the uncompressed file format.
func (t *Table) Encode(w io.Writer) error {
	buf := make([]byte, 0, 8+t.Size())
	buf = append(buf, Magic...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(t.res)) //nolint:gosec // res is bounded by MaxResolution
	buf = appendFloats(buf, t.scale)
	buf = appendFloats(buf, t.data)
	_, err := w.Write(buf)
	return err
}

// EncodeCompressed writes t wrapped in the given container.
func (t *Table) EncodeCompressed(w io.Writer, c Compression) error {
	switch c {
	case None:
		return t.Encode(w)
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := t.Encode(zw); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	case XZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return err
		}
		if err := t.Encode(xw); err != nil {
			_ = xw.Close()
			return err
		}
		return xw.Close()
	}
	return fmt.Errorf("model: unknown compression %d", c)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}
