package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_InitAndCodePage(t *testing.T) {
	doc := NewDocument(32)

	got := doc.Bytes()
	assert.Equal(t, []byte{ESC, '@', ESC, 't', CodePageWPC1252}, got)
}

func TestDocument_TextIsSingleBytePerChar(t *testing.T) {
	doc := NewDocument(32)
	prefix := len(doc.Bytes())

	doc.Text("Saída")

	line := doc.Bytes()[prefix:]
	// 5 characters plus the line feed; "í" must be one byte (0xED in cp1252).
	require.Len(t, line, 6)
	assert.Equal(t, byte(0xED), line[2])
	assert.Equal(t, byte(LF), line[5])
}

func TestDocument_KeyValuePadsToWidth(t *testing.T) {
	doc := NewDocument(32)
	prefix := len(doc.Bytes())

	doc.KeyValue("Total:", "R$ 6.00")

	line := doc.Bytes()[prefix:]
	require.Len(t, line, 33) // 32 columns + LF
	assert.True(t, bytes.HasPrefix(line, []byte("Total:")))
	assert.True(t, bytes.HasSuffix(line, []byte("R$ 6.00\n")))
}

func TestDocument_KeyValueAccountsForAccents(t *testing.T) {
	doc := NewDocument(32)
	prefix := len(doc.Bytes())

	doc.KeyValue("Saída:", "10:16")

	line := doc.Bytes()[prefix:]
	// Padding must be computed on encoded bytes, not UTF-8 length.
	require.Len(t, line, 33)
}

func TestDocument_QRCodeByteLayout(t *testing.T) {
	doc := NewDocument(32)
	prefix := len(doc.Bytes())

	doc.QRCode("abc", 6, QRECLevelM)

	got := doc.Bytes()[prefix:]
	want := []byte{
		GS, '(', 'k', 0x04, 0x00, 0x31, 0x41, 0x32, 0x00, // model 2
		GS, '(', 'k', 0x03, 0x00, 0x31, 0x43, 0x06, // module size
		GS, '(', 'k', 0x03, 0x00, 0x31, 0x45, 0x31, // EC level M
		GS, '(', 'k', 0x06, 0x00, 0x31, 0x50, 0x30, // store, len 3+3
		'a', 'b', 'c',
		GS, '(', 'k', 0x03, 0x00, 0x31, 0x51, 0x30, // print symbol
	}
	assert.Equal(t, want, got)
}

func TestDocument_QRCodeLongPayloadLengthBytes(t *testing.T) {
	payload := string(bytes.Repeat([]byte{'x'}, 300))

	doc := NewDocument(32)
	prefix := len(doc.Bytes())
	doc.QRCode(payload, 4, QRECLevelL)

	got := doc.Bytes()[prefix:]
	// Fourth group is the store-data group; 303 = 0x012F little-endian.
	store := got[9+8+8:]
	require.Equal(t, []byte{GS, '(', 'k', 0x2F, 0x01, 0x31, 0x50, 0x30}, store[:8])
}

func TestDocument_QRCodeEmptyPayloadEmitsNothing(t *testing.T) {
	doc := NewDocument(32)
	prefix := len(doc.Bytes())

	doc.QRCode("", 6, QRECLevelM)

	assert.Empty(t, doc.Bytes()[prefix:])
}

func TestDocument_Cut(t *testing.T) {
	doc := NewDocument(32)
	prefix := len(doc.Bytes())

	doc.FeedLines(3).Cut()

	assert.Equal(t, []byte{LF, LF, LF, GS, 'V', 0x00}, doc.Bytes()[prefix:])
}

func TestDocument_ZeroWidthDefaultsTo32(t *testing.T) {
	doc := NewDocument(0)
	prefix := len(doc.Bytes())

	doc.Separator('-')

	assert.Len(t, doc.Bytes()[prefix:], 33)
}
