package printer

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// CodePageWPC1252 selects the Windows-1252 character table (ESC t 16),
// a single-byte Western-European page that keeps accented text intact.
const CodePageWPC1252 = 16

// QR code error correction levels (GS ( k function 169 operand).
const (
	QRECLevelL = 0x30
	QRECLevelM = 0x31
	QRECLevelQ = 0x32
	QRECLevelH = 0x33
)

// Document builds an ESC/POS byte stream for thermal printers.
//
// Printable text is transcoded to a single-byte code page so the stream never
// carries multi-byte sequences; characters the page cannot represent are
// replaced with the encoder's substitute byte.
type Document struct {
	buf     bytes.Buffer
	width   int // print width in characters (default 32 for 58mm, 48 for 80mm)
	encoder *encoding.Encoder
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{
		width:   charWidth,
		encoder: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
	d.Init()
	d.SetCodePage(CodePageWPC1252)
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// SetCodePage sends ESC t n to select the printer character table.
func (d *Document) SetCodePage(page byte) *Document {
	d.buf.Write([]byte{ESC, 't', page})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// encode transcodes s to the document's single-byte code page.
func (d *Document) encode(s string) []byte {
	out, err := d.encoder.Bytes([]byte(s))
	if err != nil {
		// ReplaceUnsupported never errors; kept for interface completeness.
		return []byte(s)
	}
	return out
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.Write(d.encode(s))
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Subtotal            R$ 100.00"
func (d *Document) KeyValue(key, value string) *Document {
	k := d.encode(key)
	v := d.encode(value)
	spaces := d.width - len(k) - len(v)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.Write(k)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.Write(v)
	d.buf.WriteByte(LF)
	return d
}

// QRCode emits a complete QR symbol for payload using the GS ( k function
// group sequence: select model 2, set module size, set error correction,
// store the data, print the stored symbol. The groups are order-dependent;
// printers reject or misrender the symbol when any is missing or reordered.
//
// The store-data group's two length bytes carry len(payload)+3 little-endian,
// covering the cn/fn/m operand bytes that precede the payload.
func (d *Document) QRCode(payload string, moduleSize byte, ecLevel byte) *Document {
	if payload == "" {
		return d
	}
	if moduleSize == 0 {
		moduleSize = 6
	}

	data := d.encode(payload)
	storeLen := len(data) + 3

	// Function 165: select model 2.
	d.buf.Write([]byte{GS, '(', 'k', 0x04, 0x00, 0x31, 0x41, 0x32, 0x00})
	// Function 167: module size in dots.
	d.buf.Write([]byte{GS, '(', 'k', 0x03, 0x00, 0x31, 0x43, moduleSize})
	// Function 169: error correction level.
	d.buf.Write([]byte{GS, '(', 'k', 0x03, 0x00, 0x31, 0x45, ecLevel})
	// Function 180: store data in the symbol storage area.
	d.buf.Write([]byte{GS, '(', 'k', byte(storeLen & 0xFF), byte(storeLen >> 8), 0x31, 0x50, 0x30})
	d.buf.Write(data)
	// Function 181: print the stored symbol.
	d.buf.Write([]byte{GS, '(', 'k', 0x03, 0x00, 0x31, 0x51, 0x30})

	return d
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	d.SetCodePage(CodePageWPC1252)
	return d
}
