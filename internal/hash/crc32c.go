package hash

import (
	"hash"
	"hash/crc32"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// maskDelta is added to the rotated checksum when masking.
const maskDelta = 0xa282ead8

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// Mask rotates the checksum right by 15 bits and adds a constant.
//
// Checksumming data that itself embeds checksums is prone to degenerate
// results, so TFRecord frames store masked values only.
func Mask(crc uint32) uint32 {
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

// Unmask reverses Mask.
func Unmask(masked uint32) uint32 {
	rot := masked - maskDelta
	return (rot >> 17) | (rot << 15)
}

// MaskedCRC32C returns Mask(CRC32C(data)).
func MaskedCRC32C(data []byte) uint32 {
	return Mask(CRC32C(data))
}
