package deps

import (
	"context"
	"errors"
	"testing"

	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/pkgmanager"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const searchPath = "/usr/local/bin:/usr/bin"

var cargo = Toolchain[0]

type mockPackageManager struct {
	mock.Mock
}

func (m *mockPackageManager) Type() pkgmanager.Type {
	return m.Called().Get(0).(pkgmanager.Type)
}

func (m *mockPackageManager) PackageFor(tool string) string {
	return m.Called(tool).String(0)
}

func (m *mockPackageManager) InstallPackages(ctx context.Context, packages []string) error {
	return m.Called(ctx, packages).Error(0)
}

func newManager() *mockPackageManager {
	pm := &mockPackageManager{}
	pm.On("Type").Return(pkgmanager.Pacman).Maybe()
	pm.On("PackageFor", "cargo").Return("rust").Maybe()
	return pm
}

func TestEnsurePresent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/cargo", []byte("bin"), 0o755))
	pm := newManager()

	dep, err := NewProbe(fs, searchPath, pm).Ensure(context.Background(), cargo)
	require.NoError(t, err)
	assert.Equal(t, StatusInstalled, dep.Status)
	assert.Equal(t, "/usr/bin/cargo", dep.Path)
	pm.AssertNotCalled(t, "InstallPackages", mock.Anything, mock.Anything)
}

func TestEnsureInstallsOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	pm := newManager()
	pm.On("InstallPackages", mock.Anything, []string{"rust"}).
		Run(func(mock.Arguments) {
			_ = afero.WriteFile(fs, "/usr/bin/cargo", []byte("bin"), 0o755)
		}).
		Return(nil).Once()

	dep, err := NewProbe(fs, searchPath, pm).Ensure(context.Background(), cargo)
	require.NoError(t, err)
	assert.Equal(t, StatusRemediated, dep.Status)
	assert.Equal(t, "/usr/bin/cargo", dep.Path)
	pm.AssertExpectations(t)
}

func TestEnsureFailures(t *testing.T) {
	tests := []struct {
		name         string
		manager      func() *mockPackageManager
		wantContains string
		wantInstalls int
	}{
		{
			name:         "no package manager",
			manager:      func() *mockPackageManager { return nil },
			wantContains: "no supported package manager",
		},
		{
			name: "install command fails",
			manager: func() *mockPackageManager {
				pm := newManager()
				pm.On("InstallPackages", mock.Anything, []string{"rust"}).Return(errors.New("exit status 1")).Once()
				return pm
			},
			wantContains: "failed to install cargo",
			wantInstalls: 1,
		},
		{
			name: "tool still missing after install",
			manager: func() *mockPackageManager {
				pm := newManager()
				pm.On("InstallPackages", mock.Anything, []string{"rust"}).Return(nil).Once()
				return pm
			},
			wantContains: "still missing",
			wantInstalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			pm := tt.manager()

			var probe *Probe
			if pm == nil {
				probe = NewProbe(fs, searchPath, nil)
			} else {
				probe = NewProbe(fs, searchPath, pm)
			}

			dep, err := probe.Ensure(context.Background(), cargo)
			require.Error(t, err)
			assert.True(t, errdefs.IsType(err, errdefs.ErrTypeMissingDependency))
			assert.Contains(t, err.Error(), tt.wantContains)
			assert.Equal(t, StatusMissing, dep.Status)
			assert.Equal(t, 1, errdefs.ExitCodeOf(err))

			if pm != nil {
				pm.AssertNumberOfCalls(t, "InstallPackages", tt.wantInstalls)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	fs := afero.NewMemMapFs()
	probe := NewProbe(fs, searchPath, nil)
	git := Dependency{Name: "git", Required: true}

	_, err := probe.Require(git)
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrTypeMissingDependency))

	require.NoError(t, afero.WriteFile(fs, "/usr/local/bin/git", []byte("bin"), 0o755))
	dep, err := probe.Require(git)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/git", dep.Path)
}

func TestEnsureAllStopsAtFirstFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/cargo", []byte("bin"), 0o755))

	tools := []Dependency{
		{Name: "cargo", Required: true},
		{Name: "mold", Required: false},
		{Name: "clang", Required: true},
		{Name: "never-checked", Required: true},
	}

	results, err := NewProbe(fs, searchPath, nil).EnsureAll(context.Background(), tools)
	require.Error(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, StatusInstalled, results[0].Status)
	assert.Equal(t, StatusMissing, results[1].Status)
	assert.Equal(t, "clang", results[2].Name)
}
