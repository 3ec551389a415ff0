package session

import (
	"sync"
	"testing"

	"prodstats/domain/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCommitReplaces(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Current())

	first := &Dataset{FileName: "a.csv", Records: []product.Record{{Style: "A"}}}
	require.True(t, s.Commit(s.Begin(), first))
	assert.Same(t, first, s.Current())
	assert.False(t, first.ID.IsEmpty())
	assert.False(t, first.UploadedAt.IsZero())
	assert.Equal(t, 1, s.Current().RowCount())

	second := &Dataset{FileName: "b.csv"}
	require.True(t, s.Commit(s.Begin(), second))
	assert.Same(t, second, s.Current())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStoreDiscardsStaleUpload(t *testing.T) {
	s := NewStore()

	slow := s.Begin()
	fast := s.Begin()

	require.True(t, s.Commit(fast, &Dataset{FileName: "fast.csv"}))
	assert.False(t, s.Commit(slow, &Dataset{FileName: "slow.csv"}))
	assert.Equal(t, "fast.csv", s.Current().FileName)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	require.True(t, s.Commit(s.Begin(), &Dataset{FileName: "a.csv"}))
	s.Clear()
	assert.Nil(t, s.Current())
}

func TestStoreConcurrentCommits(t *testing.T) {
	s := NewStore()
	tickets := make([]Ticket, 50)
	for i := range tickets {
		tickets[i] = s.Begin()
	}

	var wg sync.WaitGroup
	for i, ticket := range tickets {
		wg.Add(1)
		go func(i int, ticket Ticket) {
			defer wg.Done()
			s.Commit(ticket, &Dataset{Size: int64(i)})
			_ = s.Current()
		}(i, ticket)
	}
	wg.Wait()

	// Whatever the interleaving, the last ticket issued is never lost.
	assert.Equal(t, int64(len(tickets)-1), s.Current().Size)
}
