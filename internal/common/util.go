package common

// WipeByteArray overwrites the buffer with zeros. Used to scrub PIN codes
// from memory once they have been sent. Safe on nil slices.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
