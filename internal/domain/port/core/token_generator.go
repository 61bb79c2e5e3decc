package core

// TokenGenerator produces opaque invite tokens. Implementations must return
// URL-safe strings carrying at least 128 bits of entropy so tokens are
// unique across all deals ever created for any practical purpose.
type TokenGenerator interface {
	Generate() (string, error)
}
