package circuits

const (
	// ElementSize is the number of message bytes packed into one BN254 scalar.
	ElementSize = 31
	ChunkBits   = ElementSize * 8

	// CommitmentRate is the number of chunks absorbed per Poseidon call,
	// next to the running state.
	CommitmentRate = 7
)
