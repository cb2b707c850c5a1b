// Package hash provides the digest implementations behind fragment
// payload checksums.
//
// # CRC32-Castagnoli (CRC32C)
//
// The default payload checksum is CRC32-Castagnoli:
//
//   - Hardware acceleration on x86 (SSE4.2) and ARM (CRC extension)
//   - 10-20 GB/s throughput on modern CPUs
//   - Superior error detection compared to CRC32-IEEE
//   - Industry standard (iSCSI, Btrfs, RocksDB, LevelDB)
//
// # Other digests
//
// MD5 is kept for interoperability with stripes written by legacy
// producers; BLAKE3 is the cryptographic option for callers that treat a
// payload checksum as tamper evidence rather than bit-rot detection.
package hash
