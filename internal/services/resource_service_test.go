package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-dat/internal/testutil"
	"github.com/deploymenttheory/go-dat/internal/types"
)

func newTestResourceService(t *testing.T, cacheSize int, resources []testutil.Resource) *ResourceService {
	t.Helper()

	b, _ := testutil.BuildContainer(60, 4, resources)
	c := openTestContainer(t, b.Bytes())
	rs := NewResourceService("test.dat", c, cacheSize)
	t.Cleanup(func() { rs.Close() })
	return rs
}

func testResources(n int) []testutil.Resource {
	resources := make([]testutil.Resource, n)
	for i := range resources {
		resources[i] = testutil.Resource{
			ID:   uint32(0x01000000 + i*0x10),
			Data: testutil.RandomPayload(50 + i*13),
		}
	}
	return resources
}

func TestResourceServiceReadResource(t *testing.T) {
	resources := testResources(20)
	rs := newTestResourceService(t, 1<<20, resources)

	for _, r := range resources {
		data, err := rs.ReadResource(r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.Data, data)
		assert.True(t, rs.IsCached(r.ID))
	}

	// Cached copies are independent of what callers do with the result
	data, err := rs.ReadResource(resources[0].ID)
	require.NoError(t, err)
	data[0] ^= 0xFF
	again, err := rs.ReadResource(resources[0].ID)
	require.NoError(t, err)
	assert.Equal(t, resources[0].Data, again)

	_, err = rs.ReadResource(0x7F000000)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestResourceServiceCacheBudget(t *testing.T) {
	resources := testResources(4)
	budget := len(resources[0].Data) + len(resources[1].Data)
	rs := newTestResourceService(t, budget, resources)

	_, err := rs.ReadResource(resources[0].ID)
	require.NoError(t, err)
	_, err = rs.ReadResource(resources[1].ID)
	require.NoError(t, err)
	assert.True(t, rs.IsCached(resources[0].ID))
	assert.True(t, rs.IsCached(resources[1].ID))

	// Exceeding the budget starts a fresh cache
	_, err = rs.ReadResource(resources[2].ID)
	require.NoError(t, err)
	assert.False(t, rs.IsCached(resources[0].ID))
	assert.True(t, rs.IsCached(resources[2].ID))

	stats := rs.GetCacheStats()
	assert.Equal(t, 1, stats["cached_resources"])
	assert.Equal(t, len(resources[2].Data), stats["cache_size_bytes"])
	assert.Equal(t, budget, stats["max_cache_bytes"])

	rs.ClearCache()
	assert.False(t, rs.IsCached(resources[2].ID))
}

func TestResourceServiceCacheDisabled(t *testing.T) {
	resources := testResources(2)
	rs := newTestResourceService(t, 0, resources)

	data, err := rs.ReadResource(resources[1].ID)
	require.NoError(t, err)
	assert.Equal(t, resources[1].Data, data)
	assert.False(t, rs.IsCached(resources[1].ID))
}

func TestResourceServiceConcurrentReads(t *testing.T) {
	resources := testResources(12)
	rs := newTestResourceService(t, 1<<20, resources)

	var wg sync.WaitGroup
	errs := make(chan error, len(resources)*8)

	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range resources {
				data, err := rs.ReadResource(r.ID)
				if err != nil {
					errs <- err
					continue
				}
				if string(data) != string(r.Data) {
					errs <- assert.AnError
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent read failed: %v", err)
	}
}

func TestResourceServiceEntriesAndFind(t *testing.T) {
	resources := testResources(9)
	rs := newTestResourceService(t, 0, resources)

	entries, err := rs.Entries()
	require.NoError(t, err)
	require.Len(t, entries, len(resources))

	for i, entry := range entries {
		assert.Equal(t, resources[i].ID, entry.ID)
		assert.Equal(t, uint32(len(resources[i].Data)), entry.Size)

		found, err := rs.Find(entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry, found)

		data, err := rs.ReadEntry(entry)
		require.NoError(t, err)
		assert.Equal(t, resources[i].Data, data)
	}

	header, err := rs.Header()
	require.NoError(t, err)
	assert.True(t, header.HasValidMagic())
	assert.Equal(t, 60, rs.PayloadSize())
	assert.Equal(t, "test.dat", rs.Name())
}

func TestResourceServiceReadEntryUsesCache(t *testing.T) {
	resources := testResources(3)
	rs := newTestResourceService(t, 1<<20, resources)

	entry, err := rs.Find(resources[1].ID)
	require.NoError(t, err)
	assert.False(t, rs.IsCached(entry.ID))

	data, err := rs.ReadEntry(entry)
	require.NoError(t, err)
	assert.Equal(t, resources[1].Data, data)
	assert.True(t, rs.IsCached(entry.ID))

	// A later lookup by id is served from the same cached copy
	again, err := rs.ReadResource(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	stats := rs.GetCacheStats()
	assert.Equal(t, 1, stats["cached_resources"])
	assert.Equal(t, len(resources[1].Data), stats["cache_size_bytes"])
}
