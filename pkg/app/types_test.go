package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-dat/internal/types"
)

func TestContainerTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  ContainerTarget
		wantErr bool
		paths   []string
		str     string
	}{
		{
			name:   "primary only",
			target: ContainerTarget{Path: "client_portal.dat"},
			paths:  []string{"client_portal.dat"},
			str:    "client_portal.dat",
		},
		{
			name:   "with fallbacks",
			target: ContainerTarget{Path: "cell.dat", Fallbacks: []string{"portal.dat", "highres.dat"}},
			paths:  []string{"cell.dat", "portal.dat", "highres.dat"},
			str:    "cell.dat (fallbacks: portal.dat, highres.dat)",
		},
		{name: "empty", target: ContainerTarget{}, wantErr: true},
		{name: "blank fallback", target: ContainerTarget{Path: "a.dat", Fallbacks: []string{""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.paths, tt.target.Paths())
			assert.Equal(t, tt.str, tt.target.String())
		})
	}
}

func TestParseResourceID(t *testing.T) {
	tests := []struct {
		input   string
		want    uint32
		wantErr bool
	}{
		{input: "06001234", want: 0x06001234},
		{input: "0x06001234", want: 0x06001234},
		{input: "0XFFFFFFFF", want: 0xFFFFFFFF},
		{input: " 1a ", want: 0x1A},
		{input: "", wantErr: true},
		{input: "0x", wantErr: true},
		{input: "100000000", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "g1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResourceID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := ParseResourceID(FormatResourceID(got))
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "not found", err: fmt.Errorf("%w: id 0x01", types.ErrNotFound), code: ErrCodeResourceNotFound},
		{name: "format", err: fmt.Errorf("bad node: %w", types.ErrFormat), code: ErrCodeCorruptContainer},
		{name: "io", err: fmt.Errorf("%w: read: unexpected EOF", types.ErrIO), code: ErrCodeContainerAccess},
		{name: "other", err: errors.New("permission denied"), code: ErrCodeContainerAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyError("failed", tt.err)

			var common *CommonError
			require.ErrorAs(t, err, &common)
			assert.Equal(t, tt.code, common.Code)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, "failed: "+tt.err.Error(), err.Error())
		})
	}

	assert.NoError(t, ClassifyError("failed", nil))

	wrapped := fmt.Errorf("wrapped: %w", NewError(ErrCodeOutput, "disk full", nil))
	assert.Equal(t, wrapped, ClassifyError("failed", wrapped))
}
