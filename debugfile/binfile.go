package debugfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"

	"github.com/mansfield-lab/collide/mpi"
)

// magicNumber tags every BinaryFile, the same way Guppy's own compress.Writer
// tags .gup files with a magic number so a misdirected read fails loudly
// instead of silently misparsing.
const magicNumber uint64 = 0xc0117de0c0117de0

// BinaryFile is a zstd-compressed, length-prefixed binary record file
// standing in for the HDF5-backed "Collisions<id>.h5" file described in
// spec.md §4.6/§6. It is not a general-purpose format; it exists to give
// the collision core's DebugRecorder somewhere real to write while a
// driver that wants real HDF5 output swaps in its own File
// implementation behind the same interface.
type BinaryFile struct {
	path string
	comm mpi.Communicator
	f    *os.File
	hdr  Header
}

var _ File = (*BinaryFile)(nil)

// CreateBinaryFile creates (master rank) or opens (other ranks, and on
// restart) the debug file at path with the given header. Non-master ranks
// never write the header themselves (spec.md §4.1: "Non-master ranks only
// obtain a parallel-I/O handle").
func CreateBinaryFile(path string, comm mpi.Communicator, hdr Header) (*BinaryFile, error) {
	bf := &BinaryFile{path: path, comm: comm, hdr: hdr}

	if !comm.IsMaster() {
		f, err := os.OpenFile(path, os.O_RDWR, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening parallel handle to %q: %w", path, err)
		}
		bf.f = f
		return bf, nil
	}

	if _, err := os.Stat(path); err == nil {
		// Restart: open the existing file rather than truncating it
		// (spec.md §4.1: "on restart, open existing").
		f, err := os.OpenFile(path, os.O_RDWR, 0644)
		if err != nil {
			return nil, fmt.Errorf("reopening %q: %w", path, err)
		}
		bf.f = f
		existing, err := readHeader(f)
		if err != nil {
			return nil, fmt.Errorf("reading header of %q: %w", path, err)
		}
		bf.hdr = existing
		return bf, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}
	if err := writeHeader(f, hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header of %q: %w", path, err)
	}
	bf.f = f
	return bf, nil
}

// CreateTimestep is a no-op for BinaryFile: unlike HDF5, the binary
// format needs no pre-created empty group, and only the master rank would
// act on this call in the HDF5 backend anyway (spec.md §4.6).
func (bf *BinaryFile) CreateTimestep(itime int) error { return nil }

// WriteTimestep appends a zstd-compressed, length-prefixed record for one
// timestep.
func (bf *BinaryFile) WriteTimestep(rec TimestepRecord) error {
	if bf.f == nil {
		return fmt.Errorf("debugfile: write on closed file %q", bf.path)
	}

	var buf bytes.Buffer
	writeInt64(&buf, int64(rec.Itime))
	writeDims(&buf, rec.Dims)
	writeFloats(&buf, rec.S)
	writeFloats(&buf, rec.CoulombLog)
	writeFloats(&buf, rec.DebyeLength)

	compressed, err := zstd.Compress(nil, buf.Bytes())
	if err != nil {
		return fmt.Errorf("compressing timestep %d record: %w", rec.Itime, err)
	}

	// A reopened handle is positioned at or before the end of the existing
	// data; move to the end so earlier records are kept.
	if _, err := bf.f.Seek(0, io.SeekEnd); err != nil {
		return err
	}
	if err := binary.Write(bf.f, binary.LittleEndian, uint64(len(compressed))); err != nil {
		return err
	}
	_, err = bf.f.Write(compressed)
	return err
}

// Close releases the underlying file handle.
func (bf *BinaryFile) Close() error {
	if bf.f == nil {
		return nil
	}
	err := bf.f.Close()
	bf.f = nil
	return err
}

func writeHeader(w io.Writer, hdr Header) error {
	var buf bytes.Buffer
	writeUint64(&buf, magicNumber)
	writeUint64(&buf, hdr.Version)
	writeStrings(&buf, hdr.Species1)
	writeStrings(&buf, hdr.Species2)
	writeFloat64(&buf, hdr.CoulombLog)
	writeInt64(&buf, int64(hdr.DebugEvery))
	_, err := w.Write(buf.Bytes())
	return err
}

func readHeader(r io.Reader) (Header, error) {
	var magic uint64
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return Header{}, err
	}
	if magic != magicNumber {
		return Header{}, fmt.Errorf("debugfile: bad magic number %x, file is not a collision debug file", magic)
	}
	var hdr Header
	if err := binary.Read(r, binary.LittleEndian, &hdr.Version); err != nil {
		return Header{}, err
	}
	var err error
	if hdr.Species1, err = readStrings(r); err != nil {
		return Header{}, err
	}
	if hdr.Species2, err = readStrings(r); err != nil {
		return Header{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.CoulombLog); err != nil {
		return Header{}, err
	}
	var debugEvery int64
	if err := binary.Read(r, binary.LittleEndian, &debugEvery); err != nil {
		return Header{}, err
	}
	hdr.DebugEvery = int(debugEvery)
	return hdr, nil
}

func writeUint64(buf *bytes.Buffer, v uint64) { binary.Write(buf, binary.LittleEndian, v) }
func writeInt64(buf *bytes.Buffer, v int64)   { binary.Write(buf, binary.LittleEndian, v) }
func writeFloat64(buf *bytes.Buffer, v float64) { binary.Write(buf, binary.LittleEndian, v) }

func writeDims(buf *bytes.Buffer, dims []int) {
	writeInt64(buf, int64(len(dims)))
	for _, d := range dims {
		writeInt64(buf, int64(d))
	}
}

func writeFloats(buf *bytes.Buffer, x []float64) {
	writeInt64(buf, int64(len(x)))
	binary.Write(buf, binary.LittleEndian, x)
}

func writeStrings(buf *bytes.Buffer, ss []string) {
	writeInt64(buf, int64(len(ss)))
	for _, s := range ss {
		b := []byte(s)
		writeInt64(buf, int64(len(b)))
		buf.Write(b)
	}
}

func readStrings(r io.Reader) ([]string, error) {
	var n int64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		var l int64
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, err
		}
		b := make([]byte, l)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		out[i] = string(b)
	}
	return out, nil
}
