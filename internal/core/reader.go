package core

import "io"

// bomSkippingReader strips a UTF-8 byte order mark from the start of the
// stream. Spreadsheet exports on Windows routinely prepend one, which
// would otherwise corrupt the first CSV header name.
type bomSkippingReader struct {
	reader  io.Reader
	pending []byte
	checked bool
	eof     bool
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newBOMSkippingReader wraps r so the first read transparently drops a
// leading BOM if present.
func newBOMSkippingReader(r io.Reader) io.Reader {
	return &bomSkippingReader{reader: r}
}

func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}
	if b.eof {
		return 0, io.EOF
	}
	if b.checked {
		return b.reader.Read(p)
	}
	b.checked = true

	head := make([]byte, len(utf8BOM))
	n, err := io.ReadFull(b.reader, head)
	switch err {
	case nil:
		if head[0] == utf8BOM[0] && head[1] == utf8BOM[1] && head[2] == utf8BOM[2] {
			return b.reader.Read(p)
		}
		b.pending = head
	case io.EOF, io.ErrUnexpectedEOF:
		// Stream shorter than a BOM, keep what there is.
		b.pending = head[:n]
		b.eof = true
	default:
		return 0, err
	}
	return b.Read(p)
}
