package textscan

import (
	"context"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrorLine is the sentinel returned in place of recognized text when OCR
// fails. Result screens render it instead of surfacing an error.
const ErrorLine = "Error detecting text"

// Recognizer converts image bytes into ordered text lines.
type Recognizer interface {
	Lines(ctx context.Context, data []byte, script Script) ([]string, error)
}

// TesseractRecognizer runs OCR in-process.
type TesseractRecognizer struct{}

func NewTesseractRecognizer() *TesseractRecognizer {
	return &TesseractRecognizer{}
}

func (r *TesseractRecognizer) Lines(ctx context.Context, data []byte, script Script) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// gosseract clients are not goroutine safe, so each call gets its own.
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(Languages(script)...); err != nil {
		return nil, err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, err
	}

	text, err := client.Text()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Adapter wraps a Recognizer with the best-effort contract the scan screen
// expects: failures become a single sentinel line, never an error.
type Adapter struct {
	rec    Recognizer
	logger *slog.Logger
}

func NewAdapter(rec Recognizer, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		rec:    rec,
		logger: logger.With("component", "textscan"),
	}
}

// Recognize returns the ordered lines found in the image. It never fails:
// OCR errors are logged and replaced with the sentinel line.
func (a *Adapter) Recognize(ctx context.Context, data []byte, script Script) []string {
	lines, err := a.rec.Lines(ctx, data, script)
	if err != nil {
		a.logger.Error("ocr failed", "error", err, "script", script)
		return []string{ErrorLine}
	}
	if len(lines) == 0 {
		return []string{ErrorLine}
	}
	return lines
}

// Text recognizes and joins lines with a single space, the shape passed to
// field extraction and speech.
func (a *Adapter) Text(ctx context.Context, data []byte, script Script) string {
	return strings.Join(a.Recognize(ctx, data, script), " ")
}
