package store_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nestforge/internal/store"
)

type user struct {
	ID   uint64
	Name string
}

func newUsers() *store.Memory[user] {
	return store.NewMemory(func(u *user) *uint64 { return &u.ID },
		user{ID: 1, Name: "Vernon"},
		user{ID: 2, Name: "Sam"},
	)
}

func TestMemory_SeedAndCreate(t *testing.T) {
	s := newUsers()
	assert.Equal(t, 2, s.Count())

	u := s.Create(user{ID: 99, Name: "Ada"})
	assert.Equal(t, uint64(3), u.ID)
	assert.True(t, s.Exists(3))
	assert.Equal(t, []string{"Vernon", "Sam", "Ada"}, names(s.All()))
}

func TestMemory_UpdateReplaceDelete(t *testing.T) {
	s := newUsers()

	u, ok := s.Update(1, func(u *user) { u.Name = "Vern"; u.ID = 42 })
	require.True(t, ok)
	assert.Equal(t, user{ID: 1, Name: "Vern"}, u)

	u, ok = s.Replace(2, user{Name: "Samantha"})
	require.True(t, ok)
	assert.Equal(t, user{ID: 2, Name: "Samantha"}, u)

	_, ok = s.Update(7, func(*user) {})
	assert.False(t, ok)

	u, ok = s.Delete(1)
	require.True(t, ok)
	assert.Equal(t, "Vern", u.Name)
	assert.False(t, s.Exists(1))
	_, ok = s.Delete(1)
	assert.False(t, ok)

	assert.Equal(t, uint64(3), s.Create(user{Name: "next"}).ID, "ids are never reused")
}

func TestMemory_Concurrent(t *testing.T) {
	s := store.NewMemory(func(u *user) *uint64 { return &u.ID })
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create(user{Name: "x"})
			s.All()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Count())
}

func names(us []user) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.Name)
	}
	return out
}
