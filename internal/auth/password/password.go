package password

import "github.com/alexedwards/argon2id"

// Hasher derives and verifies peppered argon2id digests.
type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

func (h *Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password+h.pepper, argon2id.DefaultParams)
}

func (h *Hasher) Verify(password, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password+h.pepper, digest)
	return err == nil && ok
}
