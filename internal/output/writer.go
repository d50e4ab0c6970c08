package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer streams export records as NDJSON to a file or io.Writer.
// Each record is encoded and flushed individually, so large exports
// never accumulate in memory. Records are counted per kind.
type Writer struct {
	mu      sync.Mutex
	encoder *json.Encoder
	total   int
	kinds   map[string]int

	// file is set for file-backed writers; Close syncs it before closing
	// so a completed export survives a crash right after the run.
	file *os.File
}

// NewWriter creates a new NDJSON writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		encoder: json.NewEncoder(w),
		kinds:   make(map[string]int),
	}
}

// NewFileWriter creates a new NDJSON writer that writes to a file.
// The caller must call Close() when done; Close syncs the file to disk.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		encoder: json.NewEncoder(file),
		kinds:   make(map[string]int),
		file:    file,
	}, nil
}

// Write writes a single record as one NDJSON line. Records without a
// kind are rejected before anything reaches the output.
func (w *Writer) Write(record Record) error {
	kind := record.RecordKind()
	if kind == "" {
		return fmt.Errorf("record has no kind")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write %s record: %w", kind, err)
	}

	w.total++
	w.kinds[kind]++
	return nil
}

// Count returns the total number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// CountByKind returns the number of records written with the given kind.
func (w *Writer) CountByKind(kind string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.kinds[kind]
}

// Close syncs and closes the underlying file, if any. Writers over a
// plain io.Writer have nothing to release.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
