package fingerprint

import (
	"crypto/md5"
	"crypto/sha256"
)

// Dimension is the fixed length of every fingerprint vector.
const Dimension = 128

// Algorithms accepted by NewDigest.
const (
	AlgoMD5    = "md5"
	AlgoSHA256 = "sha256"
)

// Digest produces a deterministic fixed-length fingerprint by hashing the
// chunk text and repeating the digest bytes out to the full dimension.
// It stands in for a semantic embedding; only determinism and fixed
// length are guaranteed, not any similarity property.
type Digest struct {
	algo string
	sum  func(data []byte) []byte
}

func NewDigest(algo string) *Digest {
	d := &Digest{algo: algo}
	switch algo {
	case AlgoSHA256:
		d.sum = func(data []byte) []byte {
			h := sha256.Sum256(data)
			return h[:]
		}
	default:
		d.algo = AlgoMD5
		d.sum = func(data []byte) []byte {
			h := md5.Sum(data)
			return h[:]
		}
	}
	return d
}

// Name returns the identifier of the configured digest algorithm.
func (d *Digest) Name() string { return d.algo }

// Dimension returns the length of every produced vector.
func (d *Digest) Dimension() int { return Dimension }

// Fingerprint maps the digest of text's bytes onto Dimension floats in
// [0,1]. Digests shorter than Dimension repeat; longer ones truncate.
func (d *Digest) Fingerprint(text string) []float64 {
	sum := d.sum([]byte(text))
	vec := make([]float64, Dimension)
	for i := range vec {
		vec[i] = float64(sum[i%len(sum)]) / 255.0
	}
	return vec
}
