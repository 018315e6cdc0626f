package utils

import (
	"encoding/binary"
	"errors"
	"io"
	"log"
)

// Record is one key/value pair as written to a log file.
type Record struct {
	Key   string
	Value []byte
}

// AppendRecord writes r as: key length (uint32 LE), key, value length (uint32 LE), value.
func AppendRecord(w io.Writer, r Record) error {
	keyBytes := []byte(r.Key)

	if err := binary.Write(w, binary.LittleEndian, uint32(len(keyBytes))); err != nil {
		return err
	}
	if _, err := w.Write(keyBytes); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(r.Value))); err != nil {
		return err
	}
	if _, err := w.Write(r.Value); err != nil {
		return err
	}
	return nil
}

// ReadOneRecord reads a single record from r. It returns io.EOF only when r
// is exhausted before the first byte of the record.
func ReadOneRecord(r io.Reader) (Record, error) {
	var keyLen uint32
	if err := binary.Read(r, binary.LittleEndian, &keyLen); err != nil {
		return Record{}, err
	}
	keyBytes := make([]byte, keyLen)
	if _, err := io.ReadFull(r, keyBytes); err != nil {
		return Record{}, unexpected(err)
	}

	var valueLen uint32
	if err := binary.Read(r, binary.LittleEndian, &valueLen); err != nil {
		return Record{}, unexpected(err)
	}
	value := make([]byte, valueLen)
	if _, err := io.ReadFull(r, value); err != nil {
		return Record{}, unexpected(err)
	}

	return Record{Key: string(keyBytes), Value: value}, nil
}

// ReadAllRecords reads records until EOF and returns them with the number of
// bytes they span. A record cut short at the end of the stream (an
// interrupted append) is dropped and not counted.
func ReadAllRecords(r io.Reader) ([]Record, int64, error) {
	var records []Record
	var complete int64
	for {
		record, err := ReadOneRecord(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				log.Printf("Dropping torn record after %d complete records", len(records))
				break
			}
			return nil, 0, err
		}
		records = append(records, record)
		complete += RecordSize(record)
	}
	return records, complete, nil
}

// RecordSize is the number of bytes AppendRecord writes for r.
func RecordSize(r Record) int64 {
	return int64(4 + len(r.Key) + 4 + len(r.Value))
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
