// Package keystore persists the access/refresh credential pair encrypted at
// rest. Nothing else belongs here: the pair is the only durable state the
// client core owns.
package keystore

// Pair is the credential pair. An empty field means "absent"; Save with an
// empty field deletes the corresponding stored value.
type Pair struct {
	Access  string
	Refresh string
}

// Store persists the credential pair. Implementations can use an encrypted
// file, the platform keychain, or another backend.
//
// Contract:
//   - Save overwrites both values together.
//   - Access/Refresh return ("", nil) when nothing is stored; absence is
//     not an error.
//   - Clear removes both values; clearing an empty store is a no-op.
type Store interface {
	Save(pair Pair) error
	Access() (string, error)
	Refresh() (string, error)
	Clear() error
}
