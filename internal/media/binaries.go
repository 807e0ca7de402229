package media

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

var (
	lookupOnce    sync.Once
	lookupErr     error
	ffmpegBinary  string
	ffprobeBinary string
)

// locates ffmpeg and ffprobe, preferring explicit env overrides over
// the PATH
func lookup() {
	ffmpegBinary = os.Getenv("JIMAKU_FFMPEG_PATH")
	ffprobeBinary = os.Getenv("JIMAKU_FFPROBE_PATH")

	if ffmpegBinary == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			ffmpegBinary = found
		}
	}
	if ffprobeBinary == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			ffprobeBinary = found
		}
	}

	if ffmpegBinary == "" || ffprobeBinary == "" {
		lookupErr = fmt.Errorf(
			"ffmpeg/ffprobe not found: install them or set JIMAKU_FFMPEG_PATH and JIMAKU_FFPROBE_PATH",
		)
	}
}

func FFmpegPath() (string, error) {
	lookupOnce.Do(lookup)
	if lookupErr != nil {
		return "", lookupErr
	}
	return ffmpegBinary, nil
}

func FFprobePath() (string, error) {
	lookupOnce.Do(lookup)
	if lookupErr != nil {
		return "", lookupErr
	}
	return ffprobeBinary, nil
}
