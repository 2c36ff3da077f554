package utils

import "hash/fnv"

// DeriveID maps a human-chosen name (username, deck name) to a 64-bit
// identifier using FNV-1a. The mapping is deterministic across processes and
// restarts, which is why a seeded hash cannot be used here: derived ids are
// persisted as table keys.
//
// DeriveID makes no uniqueness guarantee. Two different names may map to the
// same identifier; the table schema detects that at write time and rejects
// the second writer instead of silently aliasing records.
func DeriveID(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name)) // never returns an error
	return h.Sum64()
}
