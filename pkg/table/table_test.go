package table_test

import (
	"testing"

	"github.com/ostafen/tagkit/pkg/table"
	"github.com/stretchr/testify/require"
)

func TestPrefixTable_InsertAndGet(t *testing.T) {
	pt := table.New[int]()

	pt.Insert([]byte("BM"), 1)
	pt.Insert([]byte("GIF87a"), 2)
	pt.Insert([]byte("GIF89a"), 3)

	require.Equal(t, 3, pt.Size())

	v, found := pt.Get([]byte("BM"))
	require.True(t, found)
	require.Equal(t, 1, v)

	_, found = pt.Get([]byte("GIF8"))
	require.False(t, found)

	// Re-inserting replaces the value without growing the table.
	pt.Insert([]byte("BM"), 10)
	require.Equal(t, 3, pt.Size())

	v, _ = pt.Get([]byte("BM"))
	require.Equal(t, 10, v)
}

func TestPrefixTable_WalkVisitsAllMatchingPrefixes(t *testing.T) {
	pt := table.New[string]()

	pt.Insert([]byte("BM"), "short")
	pt.Insert([]byte("BM6"), "long")
	pt.Insert([]byte("GIF8"), "gif")

	var visited []string
	pt.Walk([]byte("BM68xxxx"), func(v string) bool {
		visited = append(visited, v)
		return false
	})
	require.Equal(t, []string{"short", "long"}, visited)

	visited = nil
	pt.Walk([]byte("GIF87a"), func(v string) bool {
		visited = append(visited, v)
		return false
	})
	require.Equal(t, []string{"gif"}, visited)

	visited = nil
	pt.Walk([]byte("nothing"), func(v string) bool {
		visited = append(visited, v)
		return false
	})
	require.Empty(t, visited)
}

func TestPrefixTable_WalkStopsWhenHandled(t *testing.T) {
	pt := table.New[string]()

	pt.Insert([]byte("BM"), "short")
	pt.Insert([]byte("BM6"), "long")

	var visited []string
	pt.Walk([]byte("BM68"), func(v string) bool {
		visited = append(visited, v)
		return true
	})
	require.Equal(t, []string{"short"}, visited)
}

func TestPrefixTable_WalkWithBinaryKeys(t *testing.T) {
	pt := table.New[int]()

	pt.Insert([]byte{0xFF, 0xD8, 0xFF}, 1)
	pt.Insert([]byte{0x89, 'P', 'N', 'G'}, 2)

	var visited []int
	pt.Walk([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, func(v int) bool {
		visited = append(visited, v)
		return false
	})
	require.Equal(t, []int{1}, visited)
}
