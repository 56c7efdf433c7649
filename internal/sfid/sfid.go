// Package sfid handles Salesforce record ids. Salesforce serves the same id in
// a case-sensitive 15-character form and a case-safe 18-character form whose
// last three characters checksum the casing of the first fifteen. Lookups
// against external input have to treat both forms as the same record.
package sfid

import (
	"errors"
)

const (
	shortLen = 15
	longLen  = 18

	chunkLen = 5

	// suffixAlphabet maps a 5-bit case signature to its checksum character.
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"
)

// ErrInvalidID is returned when a value is not a well formed Salesforce id.
var ErrInvalidID = errors.New("not a 15 or 18 character alphanumeric salesforce id")

// Valid reports whether id is a well formed 15- or 18-character Salesforce id.
func Valid(id string) bool {
	if len(id) != shortLen && len(id) != longLen {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			continue
		}

		return false
	}

	return true
}

// To18 converts an id to its 18-character form. An 18-character input is
// recomputed from its first fifteen characters, so a mis-cased suffix is
// repaired rather than preserved.
func To18(id string) (string, error) {
	if !Valid(id) {
		return "", ErrInvalidID
	}

	short := id[:shortLen]
	suffix := make([]byte, 0, longLen-shortLen)

	for chunk := 0; chunk < shortLen/chunkLen; chunk++ {
		var signature int

		for i := 0; i < chunkLen; i++ {
			c := short[chunk*chunkLen+i]
			if c >= 'A' && c <= 'Z' {
				signature |= 1 << i
			}
		}

		suffix = append(suffix, suffixAlphabet[signature])
	}

	return short + string(suffix), nil
}

// To15 converts an id to its 15-character form.
func To15(id string) (string, error) {
	if !Valid(id) {
		return "", ErrInvalidID
	}

	return id[:shortLen], nil
}

// Forms returns both id forms for lookups that must match either one.
func Forms(id string) ([]string, error) {
	long, err := To18(id)
	if err != nil {
		return nil, err
	}

	return []string{long[:shortLen], long}, nil
}

// KeyPrefix returns the three character object key prefix of an id,
// e.g. 0F9 for CollaborationGroup.
func KeyPrefix(id string) string {
	if !Valid(id) {
		return ""
	}

	return id[:3]
}
