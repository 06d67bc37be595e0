// Package output persists a run's results in one of the supported save types.
package output

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edu/dictcrack/internal/cracker"
)

const (
	Text   = "text"
	CSV    = "csv"
	JSON   = "json"
	Binary = "binary"
)

// Formats lists the accepted save types.
var Formats = []string{Text, CSV, JSON, Binary}

// Normalize resolves a save type name, accepting "pickle" for Binary.
func Normalize(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case Text, CSV, JSON, Binary:
		return f, nil
	case "pickle", "gob":
		return Binary, nil
	}
	return "", fmt.Errorf("%w: unknown save type %q (want one of %s)",
		cracker.ErrConfiguration, format, strings.Join(Formats, ", "))
}

// Encode renders res in format.
func Encode(format string, res *cracker.Results) ([]byte, error) {
	f, err := Normalize(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	switch f {
	case Text:
		for i, p := range res.Pairs() {
			if i > 0 { buf.WriteByte('\n') }
			buf.WriteString(p.Hash)
			buf.WriteByte(':')
			buf.WriteString(p.Word)
		}
	case CSV:
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"Hash", "Word"}); err != nil {
			return nil, err
		}
		for _, p := range res.Pairs() {
			if err := w.Write([]string{p.Hash, p.Word}); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	case JSON:
		b, err := json.Marshal(res)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	case Binary:
		if err := gob.NewEncoder(&buf).Encode(res.Map()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeBinary reads a map written with the Binary save type.
func DecodeBinary(b []byte) (map[string]string, error) {
	var m map[string]string
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode binary results: %w", err)
	}
	return m, nil
}

// Write encodes res and replaces path with the result. The data goes to a
// temporary file in the same directory first, so a failed write leaves any
// previous file untouched.
func Write(path, format string, res *cracker.Results) error {
	data, err := Encode(format, res)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dictcrack-*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0o644)

	bw := bufio.NewWriter(tmp)
	if _, err := bw.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save output: %w", err)
	}
	return nil
}
