package hashes

import (
	"errors"
	"regexp"
	"testing"
)

func TestDigestVectors(t *testing.T) {
	cases := []struct{ algo, want string }{
		{"md5", "900150983cd24fb0d6963f7d28e17f72"},
		{"sha1", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha224", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{"sha256", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha384", "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{"sha512", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{"sha3-224", "e642824c3f8cf24ad09234ee7d3c766fc9a3a5168d0c94ad73b46fdf"},
		{"sha3-256", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{"sha3-384", "ec01498288516fc926459f58e2c6ad8df9b473cb0fc08c2596da7cf0e49be4b298d88cea927ac7f539f1edf228376d25"},
		{"sha3-512", "b751850b1a57168a5693cd924b6b096e08f621827444f70d884f5d0240d2712e10e116e9192af3c91a7ec57647e3934057340b4cf408d5a56592f8274eec53f0"},
		{"blake2b-256", "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
		{"shake128", "5881092dd818bf5cf8a3ddb793fbcba74097d5c526a6d35f97b83351940f2cc8"},
	}
	for _, tc := range cases {
		d, err := Get(tc.algo)
		if err != nil { t.Fatalf("%s: %v", tc.algo, err) }
		if got := Hex(d, []byte("abc")); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.algo, got, tc.want)
		}
	}
}

func TestNTLM(t *testing.T) {
	d, _ := Get("ntlm")
	if got := Hex(d, []byte("password")); got != "8846f7eaee8fb117ad06bdd830b7586c" {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestDigestShapeAllAlgorithms(t *testing.T) {
	lowerHex := regexp.MustCompile(`^[0-9a-f]+$`)
	inputs := [][]byte{nil, []byte("hello"), []byte("p\xe4sswörd"), make([]byte, 1000)}
	for _, name := range List() {
		d, _ := Get(name)
		for _, in := range inputs {
			a, b := Hex(d, in), Hex(d, in)
			if a != b { t.Fatalf("%s: not deterministic", name) }
			if len(a) != d.Size()*2 { t.Fatalf("%s: len %d want %d", name, len(a), d.Size()*2) }
			if !lowerHex.MatchString(a) { t.Fatalf("%s: not lower hex: %s", name, a) }
		}
	}
}

func TestMD5BatchMatchesSingle(t *testing.T) {
	d, _ := Get("md5")
	bd, ok := d.(BatchDigester)
	if !ok { t.Fatal("md5 should implement BatchDigester") }
	var plains [][]byte
	for i := 0; i < 40; i++ { plains = append(plains, []byte{byte('a' + i%26), byte(i)}) }
	plains = append(plains, nil, []byte("hello"))
	sums := bd.DigestMany(plains)
	if len(sums) != len(plains) { t.Fatalf("got %d sums", len(sums)) }
	for i, p := range plains {
		if string(sums[i]) != string(d.Digest(p)) { t.Fatalf("mismatch at %d", i) }
	}
}

func TestGetUnsupported(t *testing.T) {
	if _, err := Get("crc1337"); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
	d, err := Get("SHA3_256")
	if err != nil || d.Name() != "sha3-256" {
		t.Fatalf("alias not resolved: %v %v", d, err)
	}
}

func TestValidateAndDetect(t *testing.T) {
	if ok, msg := Validate("md5", "5d41402abc4b2a76b9719d911017c592"); !ok {
		t.Fatalf("valid md5 rejected: %s", msg)
	}
	if ok, _ := Validate("sha1", "5d41402abc4b2a76b9719d911017c592"); ok {
		t.Fatal("md5-length target accepted for sha1")
	}
	if ok, _ := Validate("md5", "zz41402abc4b2a76b9719d911017c592"); ok {
		t.Fatal("non-hex accepted")
	}
	got := Detect("5d41402abc4b2a76b9719d911017c592")
	if len(got) == 0 || got[0] != "md5" { t.Fatalf("detect: %v", got) }
	if got := Detect("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"); got[0] != "sha256" {
		t.Fatalf("detect: %v", got)
	}
	if Detect("nothex") != nil { t.Fatal("expected nil for non-hex") }
}

func TestChecksumVectors(t *testing.T) {
	for algo, want := range map[string]string{
		"xxh64":      "ef46db3751d8e999",
		"xxh3-64":    "2d06800538d394c2",
		"murmur3-32": "00000000",
	} {
		d, err := Get(algo)
		if err != nil { t.Fatal(err) }
		if got := Hex(d, nil); got != want { t.Fatalf("%s(\"\") = %s want %s", algo, got, want) }
	}
}
