// Package encoding turns spreadsheet exports of unknown encoding into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding a reader was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

var decoders = map[Charset]encoding.Encoding{
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	Windows1252: charmap.Windows1252,
	ISO88599:    charmap.ISO8859_9,
}

// chardet reports the Latin-1 family under several names.
var detected = map[string]Charset{
	"UTF-8":        UTF8,
	"UTF-16LE":     UTF16LE,
	"UTF-16BE":     UTF16BE,
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-15":  Windows1252,
	"ISO-8859-9":   ISO88599,
}

// Decode sniffs the head of r and returns a reader producing UTF-8 along
// with the charset it decided on. A byte order mark wins, then valid UTF-8,
// then chardet's best guess, then Windows-1252.
func Decode(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing encoding: %w", err)
	}

	for _, bom := range boms {
		if bytes.HasPrefix(head, bom.prefix) {
			_, _ = br.Discard(len(bom.prefix))
			return wrap(br, bom.charset), bom.charset, nil
		}
	}

	if utf8.Valid(head) {
		return br, UTF8, nil
	}

	charset := Windows1252

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if c, ok := detected[result.Charset]; ok {
			charset = c
		}
	}

	return wrap(br, charset), charset, nil
}

func wrap(r io.Reader, charset Charset) io.Reader {
	enc, ok := decoders[charset]
	if !ok {
		return r
	}

	return transform.NewReader(r, enc.NewDecoder())
}
