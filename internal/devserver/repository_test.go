package devserver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/petgallery/internal/petstore"
)

func TestRepositoryIDsAreNeverReused(t *testing.T) {
	repo := NewRepository()
	a := repo.Create(petstore.Pet{Name: "A", Species: "Dog"})
	b := repo.Create(petstore.Pet{Name: "B", Species: "Dog"})
	require.True(t, repo.Delete(b.IDValue()))

	c := repo.Create(petstore.Pet{Name: "C", Species: "Dog", ID: petstore.ID(1)})
	assert.Equal(t, int64(1), a.IDValue())
	assert.Equal(t, int64(3), c.IDValue())

	names := []string{}
	for _, p := range repo.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A", "C"}, names)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	repo := NewRepository(petstore.Pet{Name: "A", Species: "Dog"})
	p, ok := repo.Get(1)
	require.True(t, ok)
	*p.ID = 42

	again, _ := repo.Get(1)
	assert.Equal(t, int64(1), again.IDValue())
}

func TestRepositoryClampsNegativePrice(t *testing.T) {
	repo := NewRepository()
	p := repo.Create(petstore.Pet{Name: "A", Species: "Dog", Price: -3})
	assert.Zero(t, p.Price)
}

func TestRepositoryConcurrentCreates(t *testing.T) {
	repo := NewRepository()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Create(petstore.Pet{Name: "x", Species: "y"})
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, p := range repo.List() {
		assert.False(t, seen[p.IDValue()], "duplicate id %d", p.IDValue())
		seen[p.IDValue()] = true
	}
	assert.Len(t, seen, 50)
}
