package seating

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Seed is a resolved generation seed: the numeric value fed to the PRNG and a
// label describing where it came from.
type Seed struct {
	Value int64
	Label string
}

// ResolveSeed turns free seed text into a numeric seed.
//
// An integer literal is used as is, empty text maps to 0, and any other text
// is hashed with XXH64 (seed 0) over its UTF-8 bytes.  The hash is part of the
// reproducibility contract: changing it changes every stored seat table.
func ResolveSeed(text string) Seed {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Seed{Value: n, Label: text + " (integer)"}
	}
	if text == "" {
		return Seed{Value: 0, Label: "empty_string"}
	}
	return Seed{Value: int64(xxhash.Sum64String(text)), Label: text + " (string)"}
}

const seedAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultSeedLength is the length of seeds made up for callers that gave none.
const DefaultSeedLength = 30

// RandomSeedText returns n random alphanumeric characters, for callers that
// want a fresh arrangement but still need a seed they can reproduce later.
func RandomSeedText(n int) (string, error) {
	if n <= 0 {
		n = DefaultSeedLength
	}
	buf := make([]byte, n)
	max := big.NewInt(int64(len(seedAlphabet)))
	for i := range buf {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = seedAlphabet[k.Int64()]
	}
	return string(buf), nil
}
