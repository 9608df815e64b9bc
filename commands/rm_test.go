package commands

import (
	"context"
	"testing"

	"github.com/josephlewis42/start/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestRm(t *testing.T) {
	cases := map[string]struct {
		file    string
		wantErr error
	}{
		"relative":  {"notes.txt", nil},
		"absolute":  {"/home/user/notes.txt", nil},
		"missing":   {"absent.txt", ErrNotFound},
		"directory": {"/tmp", ErrInvalidArgument},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			tos := vostest.NewDeterministicOS().AddFile("/home/user/notes.txt", "hello")

			err := Dispatch(context.Background(), tos.Context, "rm", []string{tc.file})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Contains(t, err.Error(), tc.file)
				return
			}

			assert.NoError(t, err)
			exists, err := afero.Exists(tos.Fs, "/home/user/notes.txt")
			assert.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestRm_directoryUntouched(t *testing.T) {
	tos := vostest.NewDeterministicOS()

	assert.Error(t, Dispatch(context.Background(), tos.Context, "rm", []string{"/tmp"}))

	isDir, err := afero.IsDir(tos.Fs, "/tmp")
	assert.NoError(t, err)
	assert.True(t, isDir)
}
