package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
)

// NbChunks returns how many ChunkBits-wide chunks span an element of F.
func NbChunks[F emulated.FieldParams]() int {
	var fr F
	nbBits := int(fr.NbLimbs() * fr.BitsPerLimb())
	return (nbBits + ChunkBits - 1) / ChunkBits
}

// ChunksToEmulatedElement recomposes little-endian chunks into an emulated
// element. Each chunk is range checked to ChunkBits, the last one to the
// bits that remain.
func ChunksToEmulatedElement[F emulated.FieldParams](api frontend.API, chunks []frontend.Variable) *emulated.Element[F] {
	var fr F
	nbBits := int(fr.NbLimbs() * fr.BitsPerLimb())

	binary := make([]frontend.Variable, 0, nbBits)
	for i, chunk := range chunks {
		size := min(ChunkBits, nbBits-i*ChunkBits)
		binary = append(binary, api.ToBinary(chunk, size)...)
	}

	return BinaryToEmulatedElement[F](api, binary)
}

func BinaryToEmulatedElement[F emulated.FieldParams](api frontend.API, binary []frontend.Variable) *emulated.Element[F] {
	var fr F
	limbs := make([]frontend.Variable, fr.NbLimbs())
	bitsPerLimb := int(fr.BitsPerLimb())

	// Round up to the nearest limb size
	limbsCount := (len(binary) + bitsPerLimb - 1) / bitsPerLimb

	// Fill all the limbs expect the last one (which might be smaller)
	for i := range limbsCount - 1 {
		limbs[i] = api.FromBinary(binary[i*bitsPerLimb : (i+1)*bitsPerLimb]...)
	}

	// Fill the last limb (which might be smaller)
	limbs[limbsCount-1] = api.FromBinary(binary[(limbsCount-1)*bitsPerLimb:]...)

	// Fill the rest of the limbs with zeros
	for i := limbsCount; i < len(limbs); i++ {
		limbs[i] = 0
	}

	return &emulated.Element[F]{Limbs: limbs[:]}
}
