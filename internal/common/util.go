package common

// Mask is what secrets are replaced with in anything shown to the user.
const Mask = "********"

// WipeByteArray overwrites b with zeros. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// MaskSecret returns Mask for a non-empty secret and "" otherwise, so an
// unset password is still visibly unset.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	return Mask
}
