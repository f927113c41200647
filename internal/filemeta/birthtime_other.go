//go:build !linux && !darwin && !windows

package filemeta

import (
	"os"
	"time"
)

func birthTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
