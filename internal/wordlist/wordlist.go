// Package wordlist reads candidate words from newline-delimited files, either
// all at once through a read-only memory map or in bounded batches.
package wordlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
)

var (
	ErrFileNotFound = errors.New("wordlist not found")
	ErrReadError    = errors.New("wordlist read error")
)

const (
	DefaultBatchSize    = 1_000_000
	DefaultMemoryBudget = 512 << 20

	// longest line the streaming reader accepts
	maxLineBytes = 16 << 20
)

// Options controls how Open reads a file.
type Options struct {
	// BatchSize caps the number of words per batch when streaming.
	BatchSize int
	// MemoryBudget is the largest file size, in bytes, loaded whole.
	MemoryBudget int64
}

// Source yields the words of one wordlist as successive batches. Next
// returns io.EOF once the file is exhausted.
type Source interface {
	Next() ([]string, error)
	Mode() string
	Close() error
}

// Open picks a whole-file or streaming source from the file size.
func Open(path string, opts Options) (Source, error) {
	if opts.BatchSize <= 0 { opts.BatchSize = DefaultBatchSize }
	if opts.MemoryBudget <= 0 { opts.MemoryBudget = DefaultMemoryBudget }

	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	if size <= opts.MemoryBudget {
		words, err := loadFile(f, path, size)
		f.Close()
		if err != nil {
			return nil, err
		}
		return &wholeSource{words: words}, nil
	}
	return newBatches(f, path, opts.BatchSize), nil
}

// LoadWhole reads every word of path into memory.
func LoadWhole(path string) ([]string, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadFile(f, path, size)
}

func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrReadError, path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrReadError, path, err)
	}
	if st.IsDir() {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %s is a directory", ErrReadError, path)
	}
	return f, st.Size(), nil
}

func loadFile(f *os.File, path string, size int64) ([]string, error) {
	if size == 0 {
		return []string{}, nil
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %w", ErrReadError, path, err)
	}
	defer mm.Unmap()
	return splitLines(mm), nil
}

// splitLines copies every line out of data. A final newline does not start
// an extra empty word, matching bufio.ScanLines.
func splitLines(data []byte) []string {
	words := make([]string, 0, bytes.Count(data, []byte{'\n'})+1)
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			words = append(words, normalize(data))
			break
		}
		words = append(words, normalize(data[:i]))
		data = data[i+1:]
	}
	return words
}

// normalize strips one trailing CR and drops bytes that are not valid UTF-8.
func normalize(line []byte) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	if utf8.Valid(line) {
		return string(line)
	}
	return string(bytes.ToValidUTF8(line, nil))
}

type wholeSource struct {
	words []string
	done  bool
}

func (w *wholeSource) Next() ([]string, error) {
	if w.done || len(w.words) == 0 {
		return nil, io.EOF
	}
	w.done = true
	words := w.words
	w.words = nil
	return words, nil
}

func (w *wholeSource) Mode() string { return "whole" }

func (w *wholeSource) Close() error { return nil }

// Batches streams a wordlist in slices of at most size words.
type Batches struct {
	f    *os.File
	path string
	sc   *bufio.Scanner
	size int
	done bool
}

// Stream opens path for batched reading regardless of its size.
func Stream(path string, batchSize int) (*Batches, error) {
	if batchSize <= 0 { batchSize = DefaultBatchSize }
	f, _, err := openFile(path)
	if err != nil {
		return nil, err
	}
	return newBatches(f, path, batchSize), nil
}

func newBatches(f *os.File, path string, size int) *Batches {
	sc := bufio.NewScanner(f)
	buf := make([]byte, 0, 1024*1024)
	sc.Buffer(buf, maxLineBytes)
	sc.Split(scanLF)
	return &Batches{f: f, path: path, sc: sc, size: size}
}

func (b *Batches) Next() ([]string, error) {
	if b.done {
		return nil, io.EOF
	}
	batch := make([]string, 0, min(b.size, 64*1024))
	for len(batch) < b.size && b.sc.Scan() {
		batch = append(batch, normalize(b.sc.Bytes()))
	}
	if len(batch) < b.size {
		b.done = true
		if err := b.sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadError, b.path, err)
		}
	}
	if len(batch) == 0 {
		return nil, io.EOF
	}
	return batch, nil
}

// scanLF is bufio.ScanLines without the CR handling; normalize owns that so
// both read paths agree byte for byte.
func scanLF(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (b *Batches) Mode() string { return "stream" }

func (b *Batches) Close() error { return b.f.Close() }
