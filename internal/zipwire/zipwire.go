// Package zipwire implements the subset of the ZIP on-disk format that
// sfxzip archives use: local file headers, central directory entries, the
// end-of-central-directory record, and the MS-DOS timestamp encoding they
// all share.
//
// All multi-byte fields are little-endian. zip64, encryption, multi-disk
// archives and data descriptors are outside the subset.
package zipwire

import "encoding/binary"

// Record signatures. Signature values begin with the two byte constant
// marker 0x4b50, representing the characters "PK".
const (
	SigLocalFile  uint32 = 0x04034b50
	SigCentralDir uint32 = 0x02014b50
	SigEndCentral uint32 = 0x06054b50
)

// Compression method codes.
const (
	MethodStore   uint16 = 0
	MethodDeflate uint16 = 8
	MethodBzip2   uint16 = 12
)

// Minimum extractor versions, tens digit is the major version.
const (
	VersionStore   uint16 = 10
	VersionDeflate uint16 = 20
	VersionBzip2   uint16 = 46
)

// VersionMadeBy tags central directory entries as spec 3.0, Unix host.
const VersionMadeBy uint16 = 0x031e

// ExternalAttrs is the central directory external attributes field for a
// regular file with Unix mode 0644, carried in the high 16 bits.
const ExternalAttrs uint32 = 0100644 << 16

// FlagDeferredLengths is general purpose flag bit 3: sizes and CRC follow
// the payload in a data descriptor. Such records cannot be read
// sequentially without guessing and are rejected.
const FlagDeferredLengths uint16 = 0x0008

// Zip64SizeSentinel in a 32-bit size field means the real value lives in a
// zip64 extra field.
const Zip64SizeSentinel uint32 = 0xFFFFFFFF

// Fixed record lengths, excluding variable-length name, extra field and
// comment bytes.
const (
	LocalHeaderLen   = 30
	CentralHeaderLen = 46
	EndRecordLen     = 22
)

// FileHeader carries the per-entry fields shared by the local file header
// and its central directory duplicate.
type FileHeader struct {
	Name             string
	MinVersion       uint16
	Flags            uint16
	Method           uint16
	ModTime          uint32 // packed DOS date/time, see DosDateTime
	CRC32            uint32 // of the uncompressed content
	CompressedSize   uint32
	UncompressedSize uint32
	Offset           uint32 // local header offset, central directory only
}

// AppendLocal appends the encoded local file header, signature through
// name bytes, to b. The extra field length is always zero.
func (h *FileHeader) AppendLocal(b []byte) []byte {
	var hdr [LocalHeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[0:4], SigLocalFile)
	binary.LittleEndian.PutUint16(hdr[4:6], h.MinVersion)
	binary.LittleEndian.PutUint16(hdr[6:8], h.Flags)
	binary.LittleEndian.PutUint16(hdr[8:10], h.Method)
	binary.LittleEndian.PutUint32(hdr[10:14], h.ModTime)
	binary.LittleEndian.PutUint32(hdr[14:18], h.CRC32)
	binary.LittleEndian.PutUint32(hdr[18:22], h.CompressedSize)
	binary.LittleEndian.PutUint32(hdr[22:26], h.UncompressedSize)
	binary.LittleEndian.PutUint16(hdr[26:28], uint16(len(h.Name)))
	binary.LittleEndian.PutUint16(hdr[28:30], 0) // extra field length
	b = append(b, hdr[:]...)
	return append(b, h.Name...)
}

// AppendCentral appends the encoded central directory entry to b. Extra
// field length, comment length, disk number and internal attributes stay
// zero; external attributes are the fixed regular-file mode.
func (h *FileHeader) AppendCentral(b []byte) []byte {
	var hdr [CentralHeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[0:4], SigCentralDir)
	binary.LittleEndian.PutUint16(hdr[4:6], VersionMadeBy)
	binary.LittleEndian.PutUint16(hdr[6:8], h.MinVersion)
	binary.LittleEndian.PutUint16(hdr[8:10], h.Flags)
	binary.LittleEndian.PutUint16(hdr[10:12], h.Method)
	binary.LittleEndian.PutUint32(hdr[12:16], h.ModTime)
	binary.LittleEndian.PutUint32(hdr[16:20], h.CRC32)
	binary.LittleEndian.PutUint32(hdr[20:24], h.CompressedSize)
	binary.LittleEndian.PutUint32(hdr[24:28], h.UncompressedSize)
	binary.LittleEndian.PutUint16(hdr[28:30], uint16(len(h.Name)))
	binary.LittleEndian.PutUint32(hdr[38:42], ExternalAttrs)
	binary.LittleEndian.PutUint32(hdr[42:46], h.Offset)
	b = append(b, hdr[:]...)
	return append(b, h.Name...)
}

// LocalRecord holds the decoded fixed fields of a local file header.
type LocalRecord struct {
	MinVersion       uint16
	Flags            uint16
	Method           uint16
	ModTime          uint32
	CRC32            uint32
	CompressedSize   uint32
	UncompressedSize uint32
	NameLen          uint16
	ExtraLen         uint16
}

// DecodeLocalFields decodes the 26 fixed bytes that follow a local file
// header signature. The caller is responsible for having checked the
// signature and for reading the name, extra field and payload that follow.
func DecodeLocalFields(b []byte) LocalRecord {
	return LocalRecord{
		MinVersion:       binary.LittleEndian.Uint16(b[0:2]),
		Flags:            binary.LittleEndian.Uint16(b[2:4]),
		Method:           binary.LittleEndian.Uint16(b[4:6]),
		ModTime:          binary.LittleEndian.Uint32(b[6:10]),
		CRC32:            binary.LittleEndian.Uint32(b[10:14]),
		CompressedSize:   binary.LittleEndian.Uint32(b[14:18]),
		UncompressedSize: binary.LittleEndian.Uint32(b[18:22]),
		NameLen:          binary.LittleEndian.Uint16(b[22:24]),
		ExtraLen:         binary.LittleEndian.Uint16(b[24:26]),
	}
}

// EndRecord is the end-of-central-directory record. Disk number fields
// stay zero; multi-disk archives are not produced.
type EndRecord struct {
	Entries       uint16
	CentralSize   uint32
	CentralOffset uint32
	Comment       []byte
}

// Append appends the encoded end record, including the trailing comment
// bytes, to b. The comment must fit a uint16 length; Build validates that
// before serialization starts.
func (e *EndRecord) Append(b []byte) []byte {
	var hdr [EndRecordLen]byte
	binary.LittleEndian.PutUint32(hdr[0:4], SigEndCentral)
	binary.LittleEndian.PutUint16(hdr[8:10], e.Entries)
	binary.LittleEndian.PutUint16(hdr[10:12], e.Entries)
	binary.LittleEndian.PutUint32(hdr[12:16], e.CentralSize)
	binary.LittleEndian.PutUint32(hdr[16:20], e.CentralOffset)
	binary.LittleEndian.PutUint16(hdr[20:22], uint16(len(e.Comment)))
	b = append(b, hdr[:]...)
	return append(b, e.Comment...)
}
