package note

import "context"

// Store exposes the package operations as a value, for the session and for tests
// that need to swap the storage out.
type Store struct{}

func (Store) Insert(ctx context.Context, n NewNote) (Note, error) {
	return Create(ctx, n)
}

func (Store) Delete(ctx context.Context, n Note) error {
	return Remove(ctx, n.Id)
}

func (Store) Observe(ctx context.Context) (<-chan []Note, error) {
	return Observe(ctx)
}
