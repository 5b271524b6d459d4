package layout

// placementHash is a 32-bit FNV-1a rolling polynomial hash used to seed
// force-simulation start positions. The hash is part of the layout's
// determinism contract: the same node-ID set must always produce the
// same starting positions, with no randomness observable anywhere in
// the simulation. Changing this function changes every cached and
// previously rendered force layout, so treat it as versioned.
func placementHash(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}

// hashUnit maps a string into [0, 1) via placementHash.
func hashUnit(s string) float64 {
	return float64(placementHash(s)) / float64(1<<32)
}
