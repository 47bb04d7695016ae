package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"strips bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("lon,lat\n")...), "lon,lat\n"},
		{"no bom unchanged", []byte("lon,lat\n"), "lon,lat\n"},
		{"bom only", []byte{0xEF, 0xBB, 0xBF}, ""},
		{"shorter than bom", []byte("a"), "a"},
		{"two bytes", []byte("ab"), "ab"},
		{"empty", nil, ""},
		{"partial bom prefix", []byte{0xEF, 0xBB, 'x'}, "\xef\xbbx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newBOMSkippingReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadAll() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Single-byte reads must still come back intact once the BOM check has
// buffered part of the stream.
func TestBOMSkippingReaderSmallReads(t *testing.T) {
	r := newBOMSkippingReader(strings.NewReader("abcdef"))
	var out []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
	if string(out) != "abcdef" {
		t.Errorf("read %q, want %q", out, "abcdef")
	}
}
