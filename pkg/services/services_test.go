package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-dat/internal/testutil"
)

func writeContainer(t *testing.T, resources ...testutil.Resource) string {
	t.Helper()
	b, _ := testutil.BuildContainer(508, 3, resources)
	return b.WriteFile(t)
}

func TestServiceFactory(t *testing.T) {
	factory := NewServiceFactory(1024, false)
	assert.False(t, factory.IsInitialized())

	svc := factory.ContainerService()
	require.NotNil(t, svc)
	assert.True(t, factory.IsInitialized())
	assert.Same(t, svc, factory.ContainerService())

	require.NoError(t, factory.Shutdown())
	assert.False(t, factory.IsInitialized())
	require.NoError(t, factory.Shutdown())
}

func TestContainerService(t *testing.T) {
	ctx := context.Background()
	portal := writeContainer(t,
		testutil.Resource{ID: 0x04000001, Data: testutil.RandomPayload(768)},
		testutil.Resource{ID: 0x06000001, Data: testutil.RandomPayload(1500)},
		testutil.Resource{ID: 0x06000002, Data: testutil.RandomPayload(12)},
	)
	cellData := testutil.RandomPayload(90)
	cell := writeContainer(t, testutil.Resource{ID: 0x0D000001, Data: cellData})

	svc := NewServiceFactory(1<<20, true).ContainerService()
	defer svc.Close()

	info, err := svc.OpenContainer(ctx, portal)
	require.NoError(t, err)
	assert.Equal(t, portal, info.Path)
	assert.Equal(t, uint32(512), info.BlockSize)
	assert.Equal(t, int64(508), info.PayloadSize)
	assert.True(t, info.ValidMagic)
	assert.NotZero(t, info.RootPosition)
	assert.False(t, info.OpenedAt.IsZero())

	again, err := svc.OpenContainer(ctx, portal)
	require.NoError(t, err)
	assert.Equal(t, info, again)
	assert.True(t, info.OpenedAt.Equal(again.OpenedAt), "reopening reuses the handle")

	resources, err := svc.ListResources(ctx, portal)
	require.NoError(t, err)
	require.Len(t, resources, 3)
	assert.Equal(t, uint32(0x04000001), resources[0].ID)
	assert.Equal(t, "palette", resources[0].Type)
	assert.Equal(t, uint32(1500), resources[1].Size)

	found, err := svc.FindResource(ctx, 0x0D000001, cell, portal)
	require.NoError(t, err)
	assert.Equal(t, cell, found.Source)

	data, read, err := svc.ReadResource(ctx, 0x0D000001, portal, cell)
	require.NoError(t, err)
	assert.Equal(t, cellData, data)
	assert.Equal(t, cell, read.Source)
	assert.Equal(t, "structure-geom", read.Type)

	_, err = svc.FindResource(ctx, 0x0E000001, portal, cell)
	assert.True(t, IsNotFound(err))

	_, _, err = svc.ReadResource(ctx, 0x04000001)
	assert.Error(t, err)
}

func TestContainerServiceErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewContainerService(NewServiceFactory(0, true).config)
	defer svc.Close()

	_, err := svc.OpenContainer(ctx, "/nonexistent/client_portal.dat")
	assert.Error(t, err)

	b := testutil.NewBuilder(252)
	b.SetMagic(0x1234)
	_, err = svc.OpenContainer(ctx, b.WriteFile(t))
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.ListResources(cancelled, writeContainer(t))
	assert.ErrorIs(t, err, context.Canceled)
}
