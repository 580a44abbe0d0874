package catalog

import (
	"crypto/sha256"
	"encoding/hex"
)

// computeFingerprint hashes the ordered documents. Two catalogs share a
// fingerprint only if they hold the same documents in the same order.
func computeFingerprint(docs []Document) string {
	h := sha256.New()

	for _, doc := range docs {
		h.Write([]byte(doc.Title))
		h.Write([]byte{0}) // separator

		h.Write([]byte(doc.URL))
		h.Write([]byte{0})

		h.Write([]byte(doc.Content))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
