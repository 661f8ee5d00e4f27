package cryptoadapter

import (
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/ports"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements ports.SecretHasher for participant voting secrets.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash string, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

var _ ports.SecretHasher = BcryptHasher{}
