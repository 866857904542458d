package catalog

import "context"

// ImportLocker serializes feed imports per shop. TryLock hands out an
// opaque token identifying the acquisition; Unlock releases only when
// the token still matches, so an import that overran the lock TTL
// cannot release a competing import's lock. Imports for different
// shops are independent.
type ImportLocker interface {
	// TryLock returns a non-empty release token when the lock is
	// acquired; an empty token means another import holds it.
	TryLock(ctx context.Context, shopName string) (string, error)
	Unlock(ctx context.Context, shopName, token string) error
}
