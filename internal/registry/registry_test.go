// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatesEntity(t *testing.T) {
	r := New()

	res, err := r.Resolve("Ruan Mei", "/hsr/ruan-mei")
	require.NoError(t, err)

	assert.Equal(t, "Ruan_Mei", res.Key)
	assert.Equal(t, "Ruan Mei", res.Label)
	assert.Equal(t, "/hsr/ruan-mei", res.SourceURL)
	assert.True(t, res.Created)
	assert.True(t, res.LabelSet)
	assert.True(t, res.SourceSet)
	assert.Equal(t, 1, r.Len())
}

func TestResolveEmptyIdentity(t *testing.T) {
	r := New()

	for _, in := range []string{"", "   ", "—", "()"} {
		_, err := r.Resolve(in, "/x")
		assert.ErrorIs(t, err, ErrEmptyIdentity, "input %q", in)
	}
	assert.Equal(t, 0, r.Len())
}

func TestResolveFirstWriteWins(t *testing.T) {
	r := New()

	first, err := r.Resolve("The Herta", "")
	require.NoError(t, err)
	assert.False(t, first.SourceSet)

	// Equivalent text normalizes to the same key; label stays, source fills in.
	second, err := r.Resolve("Herta", "/hsr/the-herta")
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)
	assert.False(t, second.Created)
	assert.False(t, second.LabelSet)
	assert.True(t, second.SourceSet)
	assert.Equal(t, "The Herta", second.Label)

	// A later source never overwrites the first one.
	third, err := r.Resolve("  Herta  ", "/other")
	require.NoError(t, err)
	assert.False(t, third.SourceSet)
	assert.Equal(t, "/hsr/the-herta", third.SourceURL)

	e, ok := r.Lookup("Herta")
	require.True(t, ok)
	assert.Equal(t, Entity{Key: "Herta", Label: "The Herta", SourceURL: "/hsr/the-herta"}, e)
}

func TestResolveSameHandleAcrossInterveningCalls(t *testing.T) {
	r := New()

	a, err := r.Resolve("Acheron", "")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err := r.Resolve(fmt.Sprintf("Filler %d", i), "")
		require.NoError(t, err)
	}
	b, err := r.Resolve("Acheron", "")
	require.NoError(t, err)

	assert.Equal(t, a.Entity, b.Entity)
	assert.Equal(t, 11, r.Len())
}

func TestRegistriesAreIndependent(t *testing.T) {
	r1, r2 := New(), New()

	_, err := r1.Resolve("Kafka", "/a")
	require.NoError(t, err)

	res, err := r2.Resolve("Kafka", "/b")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "/b", res.SourceURL)
}

func TestEntitiesSorted(t *testing.T) {
	r := New()
	for _, name := range []string{"Sparkle", "Acheron", "Kafka"} {
		_, err := r.Resolve(name, "")
		require.NoError(t, err)
	}

	got := r.Entities()
	require.Len(t, got, 3)
	assert.Equal(t, "Acheron", got[0].Key)
	assert.Equal(t, "Kafka", got[1].Key)
	assert.Equal(t, "Sparkle", got[2].Key)
}

func TestResolveConcurrent(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Resolve("Black Swan", fmt.Sprintf("/src/%d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
	e, ok := r.Lookup("Black_Swan")
	require.True(t, ok)
	assert.NotEmpty(t, e.SourceURL)
	assert.Equal(t, "Black Swan", e.Label)
}
