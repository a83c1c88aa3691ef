package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-dat/internal/types"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

func TestRequestValidate(t *testing.T) {
	target := app.ContainerTarget{Path: "/data/client_portal.dat"}

	tests := []struct {
		name     string
		request  Request
		wantErr  bool
		errorMsg string
	}{
		{name: "minimal request", request: Request{Target: target}},
		{name: "all filters", request: Request{Target: target, Type: "palette", MinID: "04000000", MaxID: "04FFFFFF", MaxResults: 10}},
		{name: "missing path", request: Request{}, wantErr: true, errorMsg: "invalid container target"},
		{name: "empty fallback", request: Request{Target: app.ContainerTarget{Path: "a.dat", Fallbacks: []string{""}}}, wantErr: true, errorMsg: "invalid container target"},
		{name: "unknown type", request: Request{Target: target, Type: "music"}, wantErr: true, errorMsg: "invalid resource type"},
		{name: "bad min id", request: Request{Target: target, MinID: "zz"}, wantErr: true, errorMsg: "invalid min-id"},
		{name: "bad max id", request: Request{Target: target, MaxID: "1FFFFFFFF"}, wantErr: true, errorMsg: "invalid max-id"},
		{name: "inverted range", request: Request{Target: target, MinID: "10", MaxID: "0F"}, wantErr: true, errorMsg: "min-id must not exceed max-id"},
		{name: "negative limit", request: Request{Target: target, MaxResults: -1}, wantErr: true, errorMsg: "max results cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)

			var common *app.CommonError
			require.ErrorAs(t, err, &common)
			assert.Equal(t, app.ErrCodeInvalidInput, common.Code)
		})
	}
}

func TestFilterMatches(t *testing.T) {
	req := Request{Target: app.ContainerTarget{Path: "x.dat"}, Type: "texture", MinID: "06000010", MaxID: "06000020"}
	f, err := req.parseFilter()
	require.NoError(t, err)

	assert.True(t, f.matches(types.DirectoryEntry{ID: 0x06000010}))
	assert.True(t, f.matches(types.DirectoryEntry{ID: 0x06000020}))
	assert.False(t, f.matches(types.DirectoryEntry{ID: 0x06000021}))
	assert.False(t, f.matches(types.DirectoryEntry{ID: 0x0600000F}))
	assert.False(t, f.matches(types.DirectoryEntry{ID: 0x01000015}))
}
