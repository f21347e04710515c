// core/fasta/writer.go
package fasta

import "io"

// WriteRecord writes one record with the sequence on a single line.
// Alignment consumers index rows by column, so wrapping would only
// complicate round-trips.
func WriteRecord(w io.Writer, id string, seq []byte) error {
	if _, err := io.WriteString(w, ">"+id+"\n"); err != nil {
		return err
	}
	if _, err := w.Write(seq); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Write writes records in order.
func Write(w io.Writer, recs []Record) error {
	for _, r := range recs {
		if err := WriteRecord(w, r.ID, r.Seq); err != nil {
			return err
		}
	}
	return nil
}
