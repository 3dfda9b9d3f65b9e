package dialog

import (
	"math/rand"
)

// IDGenerator mints identifiers for bookings and goals. It is injected so
// tests can substitute a deterministic sequence.
type IDGenerator interface {
	NewID() string
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const idLength = 9

type randomIDs struct{}

// NewRandomIDs returns the default generator: 9 random characters from the
// uppercase base-36 alphabet.
func NewRandomIDs() IDGenerator {
	return randomIDs{}
}

func (randomIDs) NewID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
