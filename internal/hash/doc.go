// Package hash provides the checksums used by the TFRecord container.
//
// # CRC32-Castagnoli (CRC32C)
//
// Every TFRecord frame carries two CRC32C checksums: one over the 8-byte
// length prefix and one over the payload. Go's crc32 package uses hardware
// instructions (SSE4.2, ARM CRC) when available.
//
// # Masking
//
// Frames never store a raw checksum. The stored value is
//
//	((crc >> 15) | (crc << 17)) + 0xa282ead8
//
// which is what [Mask] computes and [Unmask] reverses.
//
// # Usage
//
// For one-shot checksums:
//
//	stored := hash.MaskedCRC32C(payload)
//
// For streaming checksums over a whole output file:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	sum := h.Sum32()
package hash
