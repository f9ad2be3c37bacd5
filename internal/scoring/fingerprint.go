package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint identifies the content of a ranking. Two rankings with the same
// entries in the same order share a fingerprint.
func Fingerprint(entries []RankedEntry) string {
	if entries == nil {
		entries = []RankedEntry{}
	}
	b, _ := json.Marshal(entries)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
