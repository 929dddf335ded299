package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Ahmad-Arslan-10/Steakaway/internal/selection"
)

// fingerprintPayload is the canonical identity of a line. encoding/json sorts
// map keys and the snapshot sorts labels, so the serialization is
// deterministic for equal (product, selection) pairs.
type fingerprintPayload struct {
	ProductID  string             `json:"product_id"`
	Selections selection.Snapshot `json:"selections"`
	Quantity   int                `json:"quantity,omitempty"`
}

// Fingerprint derives the identity key for a (product, selection) pair.
func Fingerprint(productID string, selections selection.Snapshot) string {
	return digest(fingerprintPayload{ProductID: productID, Selections: selections})
}

// fingerprintWithQuantity is the legacy identity that also folds in the
// quantity at creation time, used under AppendDuplicates.
func fingerprintWithQuantity(productID string, selections selection.Snapshot, quantity int) string {
	return digest(fingerprintPayload{ProductID: productID, Selections: selections, Quantity: quantity})
}

func digest(payload fingerprintPayload) string {
	encoded, err := json.Marshal(payload)
	if err != nil {
		// A snapshot is strings all the way down; Marshal cannot fail on it.
		panic(err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
