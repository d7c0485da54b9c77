package csync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Parallel()

	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	m.Del("a")
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.Reset()
	assert.Zero(t, m.Len())
}

func TestMapConcurrent(t *testing.T) {
	t.Parallel()

	m := NewMap[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Set(i, i*i)
			m.Get(i)
			for range m.Seq2() {
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.Len())
}

func TestSlice(t *testing.T) {
	t.Parallel()

	s := NewSliceFrom([]string{"b", "c"})
	s.Prepend("a")
	s.Append("d")

	require.Equal(t, 4, s.Len())
	v, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	s.Set(1, "B")
	v, _ = s.Get(1)
	assert.Equal(t, "B", v)

	s.Delete(0)
	v, _ = s.Get(0)
	assert.Equal(t, "B", v)

	_, ok = s.Get(99)
	assert.False(t, ok)
	s.Delete(99) // no-op

	var got []string
	for item := range s.Seq() {
		got = append(got, item)
	}
	assert.Equal(t, []string{"B", "c", "d"}, got)

	s.SetSlice([]string{"x"})
	assert.Equal(t, 1, s.Len())
}

func TestSliceSeqWithIndex(t *testing.T) {
	t.Parallel()

	s := NewSliceFrom([]int{10, 20})
	sum := 0
	for i, v := range s.SeqWithIndex() {
		sum += i + v
	}
	assert.Equal(t, 31, sum)
}
