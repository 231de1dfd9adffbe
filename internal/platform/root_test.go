package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   repo/ (.notekeep)
	//     subdir/
	//       nested/
	//   configured/ (.notekeep.yaml)
	//   empty/
	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "repo")
	subDir := filepath.Join(repoDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	configuredDir := filepath.Join(baseDir, "configured")
	emptyDir := filepath.Join(baseDir, "empty")

	require.NoError(t, os.MkdirAll(nestedDir, 0755))
	require.NoError(t, os.MkdirAll(emptyDir, 0755))
	require.NoError(t, os.MkdirAll(configuredDir, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(repoDir, ".notekeep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configuredDir, ConfigFileName), []byte("adapter: fs\n"), 0644))

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: repoDir, wantRoot: repoDir},
		{name: "Start in Subdir", startPath: subDir, wantRoot: repoDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: repoDir},
		{name: "Config File Marker", startPath: configuredDir, wantRoot: configuredDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if tt.wantErr {
				// The temp dir itself may sit below a marker on odd hosts; only a miss must be ErrRootNotFound.
				if err != nil {
					assert.ErrorIs(t, err, ErrRootNotFound)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.wantRoot), filepath.Clean(got))
		})
	}
}
