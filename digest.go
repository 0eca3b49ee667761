package gaddag

import (
	"crypto/md5"
	"encoding/hex"
)

// Digest is the MD5 of a serialized word index. Consumers compare it with
// the digest of a known-good build.
type Digest [md5.Size]byte

// ComputeDigest returns the digest of data.
func ComputeDigest(data []byte) Digest {
	return md5.Sum(data)
}

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d was never set.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
