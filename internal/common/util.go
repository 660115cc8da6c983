package common

// WipeByteArray zeroes a sensitive buffer, typically a password, once it is
// no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
