package pm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/agentforge/internal/ports"
)

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(fs *ports.MockFileSystem)
		wantManager  Manager
		wantDetected bool
		wantErr      bool
	}{
		{
			name: "single lock file npm",
			setup: func(fs *ports.MockFileSystem) {
				fs.AddFile("/proj/package-lock.json", "{}")
			},
			wantManager:  NPM,
			wantDetected: true,
		},
		{
			name: "single lock file pnpm",
			setup: func(fs *ports.MockFileSystem) {
				fs.AddFile("/proj/pnpm-lock.yaml", "")
			},
			wantManager:  PNPM,
			wantDetected: true,
		},
		{
			name: "single lock file yarn",
			setup: func(fs *ports.MockFileSystem) {
				fs.AddFile("/proj/yarn.lock", "")
			},
			wantManager:  Yarn,
			wantDetected: true,
		},
		{
			name: "two lock files is ambiguous",
			setup: func(fs *ports.MockFileSystem) {
				fs.AddFile("/proj/yarn.lock", "")
				fs.AddFile("/proj/package-lock.json", "{}")
			},
			wantErr: true,
		},
		{
			name: "manifest packageManager field",
			setup: func(fs *ports.MockFileSystem) {
				fs.AddFile("/proj/package.json", `{"packageManager":"pnpm@8.6.0"}`)
			},
			wantManager:  PNPM,
			wantDetected: true,
		},
		{
			name: "manifest unknown packageManager falls back to npm",
			setup: func(fs *ports.MockFileSystem) {
				fs.AddFile("/proj/package.json", `{"packageManager":"bun@1.0.0"}`)
			},
			wantManager:  NPM,
			wantDetected: true,
		},
		{
			name:         "no signal defaults to npm",
			setup:        func(fs *ports.MockFileSystem) {},
			wantManager:  NPM,
			wantDetected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := ports.NewMockFileSystem()
			tt.setup(fs)

			d := NewDetector(fs)
			outcome, err := d.Detect("/proj")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			manager, detected := outcome.Detected()
			assert.Equal(t, tt.wantDetected, detected)
			assert.Equal(t, tt.wantManager, manager)
		})
	}
}

func TestDetector_Detect_Caches(t *testing.T) {
	fs := ports.NewMockFileSystem()
	fs.AddFile("/proj/yarn.lock", "")

	d := NewDetector(fs)
	first, err := d.Detect("/proj")
	require.NoError(t, err)

	fs.AddFile("/proj/package-lock.json", "{}")
	second, err := d.Detect("/proj")
	require.NoError(t, err)

	assert.Equal(t, first, second, "cached outcome must not change after filesystem mutates")
}

func TestDetector_Detect_CachesAmbiguous(t *testing.T) {
	fs := ports.NewMockFileSystem()
	fs.AddFile("/proj/yarn.lock", "")
	fs.AddFile("/proj/package-lock.json", "{}")

	d := NewDetector(fs)
	first, firstErr := d.Detect("/proj")
	require.ErrorIs(t, firstErr, ErrAmbiguousManager)
	assert.Len(t, first.Ambiguous, 2)

	fs.Remove("/proj/yarn.lock")
	fs.Remove("/proj/package-lock.json")
	fs.AddFile("/proj/pnpm-lock.yaml", "")

	second, secondErr := d.Detect("/proj")
	require.ErrorIs(t, secondErr, ErrAmbiguousManager)
	assert.Equal(t, first, second, "cached ambiguous outcome must not change after filesystem mutates")
}

func TestManager_LockFileName(t *testing.T) {
	assert.Equal(t, "package-lock.json", NPM.LockFileName())
	assert.Equal(t, "pnpm-lock.yaml", PNPM.LockFileName())
	assert.Equal(t, "yarn.lock", Yarn.LockFileName())
}
