package barcode

import (
	"image"
	"log/slog"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Code is one decoded barcode or QR code.
type Code struct {
	Value  string `json:"value"`
	Format string `json:"format"`
	Kind   Kind   `json:"kind"`
}

// Scanner decodes every barcode and QR code it can find in an image.
type Scanner struct {
	logger *slog.Logger
}

func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger.With("component", "barcode")}
}

// Decode runs the QR reader and the 1D multi-format reader over the image
// and merges their results. A reader finding nothing is not an error.
func (s *Scanner) Decode(img image.Image) ([]Code, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, err
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	var codes []Code
	seen := make(map[string]bool)

	readers := []gozxing.Reader{
		qrcode.NewQRCodeReader(),
		oned.NewMultiFormatOneDReader(hints),
	}

	for _, reader := range readers {
		multiReader := multi.NewGenericMultipleBarcodeReader(reader)
		results, err := multiReader.DecodeMultiple(bmp, hints)
		if err != nil {
			// NotFound is the normal outcome for a reader that has no
			// match in this image.
			s.logger.Debug("reader found no codes", "error", err)
			continue
		}
		for _, r := range results {
			value := r.GetText()
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			codes = append(codes, Code{
				Value:  value,
				Format: r.GetBarcodeFormat().String(),
				Kind:   Classify(value),
			})
		}
	}

	return codes, nil
}
