package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"edu/dictcrack/internal/cracker"
)

func sample() *cracker.Results {
	r := cracker.NewResults()
	r.Put("5d41402abc4b2a76b9719d911017c592", "hello")
	r.Put("7d793037a0760186574b0282f2f435e7", "wo,rld")
	return r
}

func TestEncodeText(t *testing.T) {
	b, err := Encode("text", sample())
	if err != nil { t.Fatal(err) }
	want := "5d41402abc4b2a76b9719d911017c592:hello\n7d793037a0760186574b0282f2f435e7:wo,rld"
	if string(b) != want { t.Fatalf("got %q", b) }
}

func TestEncodeCSV(t *testing.T) {
	b, err := Encode("CSV", sample())
	if err != nil { t.Fatal(err) }
	want := "Hash,Word\n5d41402abc4b2a76b9719d911017c592,hello\n7d793037a0760186574b0282f2f435e7,\"wo,rld\"\n"
	if string(b) != want { t.Fatalf("got %q", b) }
}

func TestEncodeJSON(t *testing.T) {
	b, err := Encode("json", sample())
	if err != nil { t.Fatal(err) }
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil { t.Fatal(err) }
	if !reflect.DeepEqual(m, sample().Map()) { t.Fatalf("got %v", m) }
}

func TestEncodeBinary(t *testing.T) {
	for _, f := range []string{"binary", "pickle"} {
		b, err := Encode(f, sample())
		if err != nil { t.Fatal(err) }
		m, err := DecodeBinary(b)
		if err != nil { t.Fatal(err) }
		if !reflect.DeepEqual(m, sample().Map()) { t.Fatalf("%s: got %v", f, m) }
	}
}

func TestEncodeEmpty(t *testing.T) {
	b, err := Encode("text", cracker.NewResults())
	if err != nil || len(b) != 0 { t.Fatalf("got %q %v", b, err) }
	b, err = Encode("json", cracker.NewResults())
	if err != nil || string(b) != "{}" { t.Fatalf("got %q %v", b, err) }
}

func TestUnknownFormat(t *testing.T) {
	if _, err := Encode("xml", sample()); !errors.Is(err, cracker.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestWriteReplacesFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out")
	if err := os.WriteFile(p, []byte("old"), 0o644); err != nil { t.Fatal(err) }
	if err := Write(p, "text", sample()); err != nil { t.Fatal(err) }
	b, err := os.ReadFile(p)
	if err != nil { t.Fatal(err) }
	if string(b[:32]) != "5d41402abc4b2a76b9719d911017c592" { t.Fatalf("got %q", b) }

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 { t.Fatalf("temporary file left behind: %v", entries) }
}

func TestWriteMissingDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "no", "such", "out")
	if err := Write(p, "text", sample()); err == nil { t.Fatal("expected error") }
}
