package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// BurnError reports a failed subtitle-burn invocation. It is never
// fatal to the session; the caller reports it and may retry.
type BurnError struct {
	Err error
}

func (e *BurnError) Error() string {
	return fmt.Sprintf("subtitle burn failed: %v", e.Err)
}

func (e *BurnError) Unwrap() error {
	return e.Err
}

// ExtractAudio produces a mono 16 kHz mp3 from any media input. For
// video it strips the video stream; for audio it normalizes the
// encoding for transcription providers.
func ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return err
	}

	kwargs := ffmpeg.KwArgs{
		"vn":     "", // No video
		"ar":     16000,
		"ac":     1,
		"acodec": "libmp3lame",
		"b:a":    "64k",
		"y":      "", // Overwrite output
	}

	err = ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}

	return nil
}

// BurnSubtitles composites the subtitle file into the video's pixel
// data and writes a new video to outputPath. No partial output is
// left behind on failure.
func BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return &BurnError{Err: fmt.Errorf("video file not found: %s", videoPath)}
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return &BurnError{Err: fmt.Errorf("subtitle file not found: %s", subtitlePath)}
	}

	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return &BurnError{Err: err}
	}

	kwargs := ffmpeg.KwArgs{
		"vf": fmt.Sprintf("subtitles='%s'", escapeFilterPath(subtitlePath)),
		"y":  "",
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		os.Remove(outputPath)
		return &BurnError{Err: err}
	}

	return nil
}

// the subtitles filter treats ':' and '\' as syntax inside its path
// argument
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	return path
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration probes the length of an audio/video file.
func Duration(filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}

	ffprobePath, err := FFprobePath()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".3gp":  true,
	}
	return videoExts[ext]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".m4a":  true,
		".wma":  true,
		".aiff": true,
	}
	return audioExts[ext]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
