// Package mode defines the encrypt/decrypt label choice.
package mode

import "fmt"

// Mode selects the label written into the output file name. It never changes
// the pixel transform: XOR with a fixed key is its own inverse.
type Mode int

const (
	Encrypt Mode = 1
	Decrypt Mode = 2
)

// Valid reports whether m is one of the two menu choices.
func (m Mode) Valid() bool {
	return m == Encrypt || m == Decrypt
}

// Label is the output file name suffix word.
func (m Mode) Label() string {
	if m == Encrypt {
		return "encrypted"
	}
	return "decrypted"
}

func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}
