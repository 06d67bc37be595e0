package potfile

import (
	"path/filepath"
	"reflect"
	"testing"

	"edu/dictcrack/internal/cracker"
)

func TestSaveAndLookup(t *testing.T) {
	p := filepath.Join(t.TempDir(), "dictcrack.pot")
	s, err := Open(p)
	if err != nil { t.Fatal(err) }
	n, err := s.Save("md5", []cracker.Crack{{Hash: "aa", Word: "x"}, {Hash: "bb", Word: "y"}})
	if err != nil || n != 2 { t.Fatalf("saved %d, %v", n, err) }
	if n, _ := s.Save("MD5", []cracker.Crack{{Hash: "AA", Word: "z"}}); n != 0 { t.Fatalf("replace counted as new: %d", n) }
	if err := s.Close(); err != nil { t.Fatal(err) }

	s, err = Open(p)
	if err != nil { t.Fatal(err) }
	defer s.Close()
	got, err := s.Lookup("md5", []string{"aa", "bb", "cc"})
	if err != nil { t.Fatal(err) }
	if !reflect.DeepEqual(got, map[string]string{"aa": "z", "bb": "y"}) { t.Fatalf("got %v", got) }
	if n, _ := s.Len(); n != 2 { t.Fatalf("len %d", n) }
}

func TestLookupSeparatesAlgorithms(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil { t.Fatal(err) }
	defer s.Close()
	if _, err := s.Save("sha1", []cracker.Crack{{Hash: "aa", Word: "x"}}); err != nil { t.Fatal(err) }
	got, err := s.Lookup("md5", []string{"aa"})
	if err != nil || len(got) != 0 { t.Fatalf("got %v %v", got, err) }
}
