package outbound

import "github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer signs access tokens carrying the user identity and role.
type TokenIssuer interface {
	Issue(u *user.User) (string, error)
}
