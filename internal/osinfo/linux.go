package osinfo

import (
	"bufio"
	"strings"

	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spf13/afero"
)

const osReleasePath = "/etc/os-release"

func detectLinuxDistro(fs afero.Fs, info *OSInfo) error {
	if err := readOSRelease(fs, info); err != nil {
		return errdefs.Wrap(errdefs.ErrTypeGeneric, "failed to detect Linux distribution", err)
	}
	return nil
}

func readOSRelease(fs afero.Fs, info *OSInfo) error {
	file, err := fs.Open(osReleasePath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := parts[0]
		value := strings.Trim(parts[1], "\"'")

		switch key {
		case "ID":
			info.Distribution = value
		case "ID_LIKE":
			info.Like = strings.Fields(value)
		case "VERSION_ID", "BUILD_ID":
			info.VersionID = value
		case "PRETTY_NAME":
			info.PrettyName = value
		}
	}

	return scanner.Err()
}
