package writer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirilvk/mktdata/internal/model"
)

// ErrInvalidSymbol is returned for symbols that cannot name a file.
var ErrInvalidSymbol = errors.New("invalid symbol")

// FileExt is the extension of per-symbol files.
const FileExt = ".txt"

// Sink persists the records generated for one symbol.
type Sink interface {
	WriteSymbol(ctx context.Context, symbol string, records []model.Record) error
}

// FileSink writes each symbol to Dir/SYMBOL.txt. Dir must already exist.
type FileSink struct {
	Dir string
}

// WriteSymbol implements Sink.
func (s FileSink) WriteSymbol(_ context.Context, symbol string, records []model.Record) error {
	return WriteFile(s.Dir, symbol, records)
}

// Path returns the file a symbol is written to.
func Path(dir, symbol string) string {
	return filepath.Join(dir, symbol+FileExt)
}

// WriteFile truncates Dir/SYMBOL.txt and writes the header followed by one
// line per record.
func WriteFile(dir, symbol string, records []model.Record) (err error) {
	if err := checkSymbol(symbol); err != nil {
		return err
	}

	path := Path(dir, symbol)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	w.WriteString(model.Header)
	w.WriteByte('\n')
	for _, r := range records {
		w.WriteString(model.FormatRecord(r))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile parses a per-symbol file back into records.
func ReadFile(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := model.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, nil
}

func checkSymbol(symbol string) error {
	if symbol == "" || symbol == "." || symbol == ".." || strings.ContainsAny(symbol, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	return nil
}

// MultiSink writes every symbol to each sink in order, stopping at the first
// error.
type MultiSink []Sink

// WriteSymbol implements Sink.
func (m MultiSink) WriteSymbol(ctx context.Context, symbol string, records []model.Record) error {
	for _, s := range m {
		if err := s.WriteSymbol(ctx, symbol, records); err != nil {
			return err
		}
	}
	return nil
}
