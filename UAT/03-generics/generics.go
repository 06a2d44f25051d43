// Package generics shows mocks of generic interfaces.
package generics

// Repository stores items by id.
type Repository[T any] interface {
	Save(item T) error
	Get(id string) (T, error)
}

// ProcessItem loads the item with the given id, transforms it and saves the result.
func ProcessItem[T any](repo Repository[T], id string, transformer func(T) T) error {
	item, err := repo.Get(id)
	if err != nil {
		return err
	}

	return repo.Save(transformer(item))
}
