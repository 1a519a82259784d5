package pricetag

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/jpeg"
	"log/slog"

	"github.com/Bbmxzz/see2hear/internal/textscan"
)

const (
	classPriceTag = "priceTag"
	tagExpand     = 1.2
)

// Tag is the structured record assembled from one detected price tag.
type Tag struct {
	Box      Box    `json:"box"`
	Brand    string `json:"brand,omitempty"`
	Name     string `json:"name,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Price    string `json:"price,omitempty"`
	VAT      string `json:"vat,omitempty"`
}

func (t *Tag) setField(class, text string) {
	switch class {
	case "brand":
		t.Brand = text
	case "name":
		t.Name = text
	case "quantity":
		t.Quantity = text
	case "price":
		t.Price = text
	case "vat":
		t.VAT = text
	}
}

// Pipeline runs the two-stage read: remote detection, then local crops and
// field OCR per tag.
type Pipeline struct {
	detector *DetectorClient
	ocr      *textscan.Adapter
	logger   *slog.Logger
}

func NewPipeline(detector *DetectorClient, ocr *textscan.Adapter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		detector: detector,
		ocr:      ocr,
		logger:   logger.With("component", "pricetag"),
	}
}

// Read detects price tags in the image and extracts the text fields of
// each one. A crop or OCR failure on one field is logged and skipped; only
// a detection failure is fatal to the batch.
func (p *Pipeline) Read(ctx context.Context, img image.Image, jpegData []byte) ([]Tag, *Detection, error) {
	det, err := p.detector.Detect(ctx, jpegData)
	if err != nil {
		return nil, nil, err
	}

	// Predictions are in the detector's pixel space; map them onto the
	// source image before cropping.
	srcBounds := img.Bounds()
	scaleX := float64(srcBounds.Dx()) / det.Image.Width
	scaleY := float64(srcBounds.Dy()) / det.Image.Height
	if det.Image.Width <= 0 || det.Image.Height <= 0 {
		scaleX, scaleY = 1, 1
	}

	scaled := make([]Prediction, len(det.Predictions))
	for i, pred := range det.Predictions {
		scaled[i] = Prediction{
			Class:      pred.Class,
			X:          pred.X * scaleX,
			Y:          pred.Y * scaleY,
			Width:      pred.Width * scaleX,
			Height:     pred.Height * scaleY,
			Confidence: pred.Confidence,
		}
	}

	var tags []Tag
	for _, pred := range scaled {
		if pred.Class != classPriceTag {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		tag := Tag{Box: pred.Rect()}
		region := pred.Rect()

		crop := cropRect(pred, srcBounds, tagExpand)
		if crop.Empty() {
			p.logger.Warn("empty tag crop, skipping", "box", tag.Box)
			tags = append(tags, tag)
			continue
		}
		tagImg := subImage(img, crop)

		for _, field := range scaled {
			if field.Class == classPriceTag || !region.contains(field) {
				continue
			}

			// Field coordinates move into the cropped tag's space.
			local := Prediction{
				Class:  field.Class,
				X:      field.X - float64(crop.Min.X),
				Y:      field.Y - float64(crop.Min.Y),
				Width:  field.Width,
				Height: field.Height,
			}
			fieldRect := cropRect(local, tagImg.Bounds(), 1.0)
			if fieldRect.Empty() {
				p.logger.Warn("empty field crop, skipping", "class", field.Class)
				continue
			}

			fieldData, err := encodeJPEG(subImage(tagImg, fieldRect))
			if err != nil {
				p.logger.Warn("field encode failed, skipping", "class", field.Class, "error", err)
				continue
			}

			text := p.ocr.Text(ctx, fieldData, textscan.ScriptJapanese)
			if text == textscan.ErrorLine {
				p.logger.Warn("field ocr failed, skipping", "class", field.Class)
				continue
			}
			tag.setField(field.Class, text)
		}

		tags = append(tags, tag)
	}

	return tags, det, nil
}

// subImage copies a region into a fresh RGBA image anchored at the origin,
// so field coordinates inside it start from zero.
func subImage(img image.Image, rect image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
