package cryptoadapter

import (
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"

	"golang.org/x/crypto/bcrypt"
)

// BcryptVerifier implements ports.SecretVerifier against bcrypt hashes
// produced at participant registration.
type BcryptVerifier struct{}

func (BcryptVerifier) Compare(hash string, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}

var _ ports.SecretVerifier = BcryptVerifier{}
