// Package media prepares user-supplied images (profile avatars) before they
// are stored: it checks the format, then scales and optionally crops to a
// square with ffmpeg.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 3840
	AvatarDimension     = 512
	defaultJPEGQuality  = 3
	defaultPNGLevel     = 4
	defaultWebPQuality  = 85
)

var ErrUnsupportedImage = errors.New("media: unsupported image")

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Spec describes the target shape of a processed image.
type Spec struct {
	MaxDimension int
	// Square center-crops to the shorter edge before scaling.
	Square bool
}

func AvatarSpec() Spec {
	return Spec{MaxDimension: AvatarDimension, Square: true}
}

type Result struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, spec Spec) (*Result, error)
}

type FFMPEGProcessor struct {
	path        string
	jpegQuality int
	pngLevel    int
	webpQuality int
	run         func(ctx context.Context, path string, args []string, stdin []byte) ([]byte, error)
}

func NewFFMPEGProcessor(binaryPath string) *FFMPEGProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	return &FFMPEGProcessor{
		path:        path,
		jpegQuality: defaultJPEGQuality,
		pngLevel:    defaultPNGLevel,
		webpQuality: defaultWebPQuality,
		run:         runCommand,
	}
}

func (p *FFMPEGProcessor) Process(ctx context.Context, upload Upload, spec Spec) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}
	contentType := contentTypeForFormat(format, upload.ContentType, upload.FileName)

	maxDim := spec.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	plan := planResize(cfg.Width, cfg.Height, maxDim, spec.Square)
	if !plan.needed {
		return &Result{Bytes: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
	}

	codec, codecArgs, err := p.codecArgs(contentType)
	if err != nil {
		return nil, err
	}
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vf", plan.filter(),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", codec,
	}
	args = append(args, codecArgs...)
	args = append(args, "pipe:1")

	out, err := p.run(ctx, p.path, args, data)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg: produced empty output")
	}
	return &Result{
		Bytes:       out,
		ContentType: contentType,
		Width:       plan.width,
		Height:      plan.height,
		Resized:     true,
	}, nil
}

type resizePlan struct {
	needed        bool
	crop          int
	width, height int
}

func (p resizePlan) filter() string {
	scale := fmt.Sprintf("scale=%d:%d:flags=lanczos", p.width, p.height)
	if p.crop > 0 {
		return fmt.Sprintf("crop=%d:%d,%s", p.crop, p.crop, scale)
	}
	return scale
}

func planResize(width, height, maxDim int, square bool) resizePlan {
	if square && width != height {
		side := width
		if height < side {
			side = height
		}
		target := ensureMin(minInt(side, maxDim))
		return resizePlan{needed: true, crop: side, width: target, height: target}
	}
	if width <= maxDim && height <= maxDim {
		return resizePlan{width: width, height: height}
	}
	w, h := scaleToFit(width, height, maxDim)
	return resizePlan{needed: true, width: w, height: h}
}

func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		newH := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return ensureMin(maxDim), ensureMin(newH)
	}
	newW := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return ensureMin(newW), ensureMin(maxDim)
}

func ensureMin(value int) int {
	if value < 2 {
		return 2
	}
	return value
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (p *FFMPEGProcessor) codecArgs(contentType string) (string, []string, error) {
	switch contentType {
	case "image/jpeg":
		return "mjpeg", []string{"-q:v", strconv.Itoa(p.jpegQuality)}, nil
	case "image/png":
		return "png", []string{"-compression_level", strconv.Itoa(p.pngLevel)}, nil
	case "image/webp":
		return "libwebp", []string{"-quality", strconv.Itoa(p.webpQuality)}, nil
	default:
		return "", nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedImage, contentType)
	}
}

func runCommand(ctx context.Context, path string, args []string, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	return stdout.Bytes(), nil
}

// contentTypeForFormat prefers the decoded format over what the client claimed.
func contentTypeForFormat(format, claimed, fileName string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	}
	ct := strings.ToLower(strings.TrimSpace(claimed))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" {
		return ct
	}
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); mt != "" {
		return strings.ToLower(mt)
	}
	return "application/octet-stream"
}

// ExtensionFor maps a processed content type to a file extension for object names.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}
