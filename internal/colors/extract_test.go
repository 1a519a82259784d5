package colors

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
)

func newTestExtractor() *Extractor {
	return NewExtractor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func uniformImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestExtractUniformImage(t *testing.T) {
	img := uniformImage(90, 90, color.RGBA{R: 255, A: 255})
	res := newTestExtractor().Extract(context.Background(), img)

	if res.Average != "#FF0000" {
		t.Errorf("average = %q, want #FF0000", res.Average)
	}
	if res.Center != "#FF0000" {
		t.Errorf("center = %q, want #FF0000", res.Center)
	}
	if len(res.Segments) != 9 {
		t.Fatalf("expected 9 segments, got %d", len(res.Segments))
	}
	for i, seg := range res.Segments {
		if seg != "#FF0000" {
			t.Errorf("segment %d = %q, want #FF0000", i, seg)
		}
	}

	if res.AverageName != "red" {
		t.Errorf("average name = %q, want red", res.AverageName)
	}
	if res.CenterName != "red" {
		t.Errorf("center name = %q, want red", res.CenterName)
	}
	if len(res.SegmentNames) != 9 {
		t.Fatalf("expected 9 segment names, got %d", len(res.SegmentNames))
	}
}

func TestExtractSegmentsAreIndependent(t *testing.T) {
	// Left third red, right two thirds blue. The grid should pick up the
	// difference per segment while the average lands in between.
	img := image.NewRGBA(image.Rect(0, 0, 90, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 90; x++ {
			if x < 30 {
				img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}

	res := newTestExtractor().Extract(context.Background(), img)
	if len(res.Segments) != 9 {
		t.Fatalf("expected 9 segments, got %d", len(res.Segments))
	}
	if res.Segments[0] != "#FF0000" {
		t.Errorf("top-left segment = %q, want #FF0000", res.Segments[0])
	}
	if res.Segments[2] != "#0000FF" {
		t.Errorf("top-right segment = %q, want #0000FF", res.Segments[2])
	}
}

func TestPercentRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	r := percentRect(bounds, 0, 33, 0, 33)
	if r.Min.X != 0 || r.Min.Y != 0 {
		t.Errorf("unexpected min %v", r.Min)
	}
	// Percent ranges are inclusive, so 0-33 covers pixels up to x=33.
	if r.Max.X != 34 || r.Max.Y != 34 {
		t.Errorf("unexpected max %v", r.Max)
	}
}
