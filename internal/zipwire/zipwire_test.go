package zipwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = FileHeader{
	Name:             "a.txt",
	MinVersion:       20,
	Flags:            2,
	Method:           8,
	ModTime:          0x52a463d4,
	CRC32:            0x11223344,
	CompressedSize:   5,
	UncompressedSize: 10,
	Offset:           0x01020304,
}

func TestAppendLocal(t *testing.T) {
	t.Parallel()

	got := testHeader.AppendLocal(nil)
	want := []byte{
		0x50, 0x4b, 0x03, 0x04, // signature
		0x14, 0x00, // version needed
		0x02, 0x00, // flags
		0x08, 0x00, // method
		0xd4, 0x63, 0xa4, 0x52, // dos time, dos date
		0x44, 0x33, 0x22, 0x11, // crc-32
		0x05, 0x00, 0x00, 0x00, // compressed size
		0x0a, 0x00, 0x00, 0x00, // uncompressed size
		0x05, 0x00, // name length
		0x00, 0x00, // extra field length
		'a', '.', 't', 'x', 't',
	}
	assert.Equal(t, want, got)
}

func TestAppendCentral(t *testing.T) {
	t.Parallel()

	got := testHeader.AppendCentral(nil)
	want := []byte{
		0x50, 0x4b, 0x01, 0x02, // signature
		0x1e, 0x03, // version made by: spec 3.0, unix
		0x14, 0x00, // version needed
		0x02, 0x00, // flags
		0x08, 0x00, // method
		0xd4, 0x63, 0xa4, 0x52, // dos time, dos date
		0x44, 0x33, 0x22, 0x11, // crc-32
		0x05, 0x00, 0x00, 0x00, // compressed size
		0x0a, 0x00, 0x00, 0x00, // uncompressed size
		0x05, 0x00, // name length
		0x00, 0x00, // extra field length
		0x00, 0x00, // comment length
		0x00, 0x00, // disk number start
		0x00, 0x00, // internal attributes
		0x00, 0x00, 0xa4, 0x81, // external attributes: regular file 0644
		0x04, 0x03, 0x02, 0x01, // local header offset
		'a', '.', 't', 'x', 't',
	}
	assert.Equal(t, want, got)
}

func TestDecodeLocalFields(t *testing.T) {
	t.Parallel()

	encoded := testHeader.AppendLocal(nil)
	rec := DecodeLocalFields(encoded[4:LocalHeaderLen])

	assert.Equal(t, testHeader.MinVersion, rec.MinVersion)
	assert.Equal(t, testHeader.Flags, rec.Flags)
	assert.Equal(t, testHeader.Method, rec.Method)
	assert.Equal(t, testHeader.ModTime, rec.ModTime)
	assert.Equal(t, testHeader.CRC32, rec.CRC32)
	assert.Equal(t, testHeader.CompressedSize, rec.CompressedSize)
	assert.Equal(t, testHeader.UncompressedSize, rec.UncompressedSize)
	assert.Equal(t, uint16(5), rec.NameLen)
	assert.Equal(t, uint16(0), rec.ExtraLen)
}

func TestEndRecordAppend(t *testing.T) {
	t.Parallel()

	end := EndRecord{
		Entries:       2,
		CentralSize:   0x30,
		CentralOffset: 0x40,
		Comment:       []byte("!!#"),
	}
	got := end.Append(nil)
	want := []byte{
		0x50, 0x4b, 0x05, 0x06, // signature
		0x00, 0x00, // disk number
		0x00, 0x00, // central directory disk
		0x02, 0x00, // entries on this disk
		0x02, 0x00, // entries total
		0x30, 0x00, 0x00, 0x00, // central directory size
		0x40, 0x00, 0x00, 0x00, // central directory offset
		0x03, 0x00, // comment length
		'!', '!', '#',
	}
	require.Equal(t, want, got)
}

func TestAppendExtends(t *testing.T) {
	t.Parallel()

	prefix := []byte("#!stub\n")
	got := testHeader.AppendLocal(append([]byte(nil), prefix...))
	require.Equal(t, prefix, got[:len(prefix)])
	assert.Len(t, got, len(prefix)+LocalHeaderLen+len(testHeader.Name))
}
