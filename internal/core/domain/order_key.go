package domain

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// OrderKey derives the deterministic id of an order from the time marker of
// its creation, the item contract, the item id and the seller. Identical
// inputs always produce the identical key; two live orders can therefore
// never share one, because an item cannot be listed twice by the same seller
// at the same marker.
func OrderKey(ts uint64, itemContract string, itemID uint64, seller Identity) string {
	h := sha3.NewLegacyKeccak256()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], ts)
	h.Write(buf[:])

	binary.BigEndian.PutUint64(buf[:], uint64(len(itemContract)))
	h.Write(buf[:])
	h.Write([]byte(itemContract))

	binary.BigEndian.PutUint64(buf[:], itemID)
	h.Write(buf[:])
	h.Write([]byte(seller))

	return hex.EncodeToString(h.Sum(nil))
}
