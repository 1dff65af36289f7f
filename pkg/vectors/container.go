// Package vectors reads and writes the test-vector fixtures used by the
// bit-exact test tooling: a binary container of tagged IQ records, a
// line-oriented profile list describing channel configurations, and a
// lightweight FFT pre-scan that flags apparently-empty captures.
package vectors

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Record is one fixture entry: a channel tag (sf, bandwidth in kHz,
// coding-rate index), the un-encoded payload bytes it carries, and the
// IQ samples captured for it.
type Record struct {
	SF      int
	BWkHz   int
	CRIdx   int
	Flags   int
	Payload []byte
	Samples []complex128
}

// Matches reports whether r was captured under the channel p describes.
func (r Record) Matches(p Profile) bool {
	return r.SF == p.SF && r.BWkHz == p.BW/1000 && r.CRIdx == p.crIndex()
}

// ReadContainer parses the binary vector container format: a leading u32
// record count, then per record five u32 header fields whose actual
// value occupies the high 24 bits (value = raw >> 8), one reserved byte,
// the payload, a u32 sample count, and that many float64 (re, im) pairs.
func ReadContainer(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("vectors: reading record count: %w", err)
	}

	records := make([]Record, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := readRecord(br)
		if err != nil {
			return nil, fmt.Errorf("vectors: record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func readHeaderField(r io.Reader) (int, error) {
	var raw uint32
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return 0, err
	}
	return int(raw >> 8), nil
}

func readRecord(r io.Reader) (Record, error) {
	var rec Record
	var err error

	if rec.SF, err = readHeaderField(r); err != nil {
		return rec, err
	}
	if rec.BWkHz, err = readHeaderField(r); err != nil {
		return rec, err
	}
	if rec.CRIdx, err = readHeaderField(r); err != nil {
		return rec, err
	}
	if rec.Flags, err = readHeaderField(r); err != nil {
		return rec, err
	}
	length, err := readHeaderField(r)
	if err != nil {
		return rec, err
	}

	var reserved byte
	if err := binary.Read(r, binary.LittleEndian, &reserved); err != nil {
		return rec, err
	}

	rec.Payload = make([]byte, length)
	if _, err := io.ReadFull(r, rec.Payload); err != nil {
		return rec, err
	}

	var sampleCount uint32
	if err := binary.Read(r, binary.LittleEndian, &sampleCount); err != nil {
		return rec, err
	}

	rec.Samples = make([]complex128, sampleCount)
	for i := range rec.Samples {
		var re, im float64
		if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
			return rec, err
		}
		if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
			return rec, err
		}
		rec.Samples[i] = complex(re, im)
	}

	return rec, nil
}

// WriteContainer serializes records in the format ReadContainer expects.
func WriteContainer(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(records))); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writeRecord(bw, rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeHeaderField(w io.Writer, value int) error {
	return binary.Write(w, binary.LittleEndian, uint32(value)<<8)
}

func writeRecord(w io.Writer, rec Record) error {
	if err := writeHeaderField(w, rec.SF); err != nil {
		return err
	}
	if err := writeHeaderField(w, rec.BWkHz); err != nil {
		return err
	}
	if err := writeHeaderField(w, rec.CRIdx); err != nil {
		return err
	}
	if err := writeHeaderField(w, rec.Flags); err != nil {
		return err
	}
	if err := writeHeaderField(w, len(rec.Payload)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, byte(0)); err != nil {
		return err
	}
	if _, err := w.Write(rec.Payload); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(rec.Samples))); err != nil {
		return err
	}
	for _, s := range rec.Samples {
		if err := binary.Write(w, binary.LittleEndian, real(s)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, imag(s)); err != nil {
			return err
		}
	}
	return nil
}
