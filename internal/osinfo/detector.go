package osinfo

import (
	"runtime"

	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spf13/afero"
)

type OSInfo struct {
	Distribution string
	Like         []string
	VersionID    string
	PrettyName   string
	Architecture string
}

// IDs returns the distribution ID followed by its ID_LIKE parents, most
// specific first.
func (o *OSInfo) IDs() []string {
	return append([]string{o.Distribution}, o.Like...)
}

var getOsFunc = getGoos

func getGoos() string {
	return runtime.GOOS
}

// GetOSInfo reads the distribution from /etc/os-release on fs.
func GetOSInfo(fs afero.Fs) (*OSInfo, error) {
	if getOsFunc() != "linux" {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeGeneric, "only linux is supported, found "+getOsFunc())
	}

	info := &OSInfo{
		Architecture: runtime.GOARCH,
	}

	if err := detectLinuxDistro(fs, info); err != nil {
		return nil, err
	}

	return info, nil
}
