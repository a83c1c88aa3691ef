package mount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-dat/internal/services"
	"github.com/deploymenttheory/go-dat/internal/testutil"
)

func openLibrary(t *testing.T, containers ...[]testutil.Resource) *services.Library {
	t.Helper()

	var paths []string
	for _, resources := range containers {
		b, _ := testutil.BuildContainer(256, 3, resources)
		paths = append(paths, b.WriteFile(t))
	}

	library, err := services.OpenLibrary(paths, services.LibraryConfig{CacheSize: 1 << 20})
	require.NoError(t, err)
	t.Cleanup(func() { library.Close() })
	return library
}

func TestBuildLayout(t *testing.T) {
	library := openLibrary(t,
		[]testutil.Resource{
			{ID: 0x01000002, Data: testutil.RandomPayload(10)},
			{ID: 0x06000001, Data: testutil.RandomPayload(20)},
			{ID: 0x06000003, Data: testutil.RandomPayload(30)},
			{ID: 0x7F000001, Data: testutil.RandomPayload(1)},
		},
		[]testutil.Resource{
			{ID: 0x01000001, Data: testutil.RandomPayload(40)},
			{ID: 0x06000003, Data: testutil.RandomPayload(50)},
		},
	)

	dirs, err := BuildLayout(library)
	require.NoError(t, err)

	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"model", "texture", "type-7f"}, names)

	models := dirs[0].Files
	require.Len(t, models, 2)
	assert.Equal(t, "01000001", models[0].Name)
	assert.Equal(t, library.Members()[1], models[0].Member)
	assert.Equal(t, "01000002", models[1].Name)
	assert.Equal(t, library.Members()[0], models[1].Member)

	textures := dirs[1].Files
	require.Len(t, textures, 2)
	assert.Equal(t, "06000003", textures[1].Name)
	assert.Equal(t, uint32(30), textures[1].Entry.Size)
	assert.Equal(t, library.Members()[0], textures[1].Member)
}

func TestBuildLayoutEmpty(t *testing.T) {
	library := openLibrary(t, nil)

	dirs, err := BuildLayout(library)
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestBuildLayoutCorruptDirectory(t *testing.T) {
	b := testutil.NewBuilder(64)
	b.SetRoot(b.AddBlob([]byte{1, 2, 3}))

	library, err := services.OpenLibrary([]string{b.WriteFile(t)}, services.LibraryConfig{})
	require.NoError(t, err)
	defer library.Close()

	_, err = BuildLayout(library)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "0E00001A", FileName(0x0E00001A))
}
