package domain

import "strings"

// ContactIdentity pairs an internal contact id with the external channel
// address the messaging provider uses for that contact.
type ContactIdentity struct {
	ContactID string `json:"contactId"`
	Address   string `json:"address"`
	Name      string `json:"name,omitempty"`
}

// NormalizeAddress reduces an external address to its canonical form: digits
// only, with the leading "+" and common formatting characters removed.
// Normalizing an already-normalized address is a no-op.
func NormalizeAddress(address string) string {
	var b strings.Builder
	b.Grow(len(address))
	for _, r := range address {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
