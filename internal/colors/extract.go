package colors

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
)

// Result carries the three independent extractions. Each field is filled by
// its own computation; a failed one stays empty without blocking the others.
type Result struct {
	Average  string   `json:"average,omitempty"`
	Segments []string `json:"segments,omitempty"`
	Center   string   `json:"center,omitempty"`

	AverageName  string   `json:"average_name,omitempty"`
	SegmentNames []string `json:"segment_names,omitempty"`
	CenterName   string   `json:"center_name,omitempty"`
}

// segmentBounds is the 3x3 grid in percent coordinates, matching the scan
// screen's segment layout.
var segmentBounds = [9][4]int{
	{0, 33, 0, 33}, {34, 66, 0, 33}, {67, 100, 0, 33},
	{0, 33, 34, 66}, {34, 66, 34, 66}, {67, 100, 34, 66},
	{0, 33, 67, 100}, {34, 66, 67, 100}, {67, 100, 67, 100},
}

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger.With("component", "colors")}
}

// Extract runs the whole-image average, the segment grid, and the center
// crop concurrently. The calls race independently and fill independent
// fields; no ordering between them is guaranteed or needed.
func (e *Extractor) Extract(ctx context.Context, img image.Image) *Result {
	res := &Result{}
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		hex, err := averageHex(ctx, img, img.Bounds())
		if err != nil {
			e.logger.Warn("average extraction failed", "error", err)
			return
		}
		res.Average = hex
		res.AverageName = Name(hex)
	}()

	go func() {
		defer wg.Done()
		segments := make([]string, 0, len(segmentBounds))
		names := make([]string, 0, len(segmentBounds))
		for _, b := range segmentBounds {
			hex, err := averageHex(ctx, img, percentRect(img.Bounds(), b[0], b[1], b[2], b[3]))
			if err != nil {
				e.logger.Warn("segment extraction failed", "error", err)
				return
			}
			segments = append(segments, hex)
			names = append(names, Name(hex))
		}
		res.Segments = segments
		res.SegmentNames = names
	}()

	go func() {
		defer wg.Done()
		hex, err := averageHex(ctx, img, percentRect(img.Bounds(), 25, 75, 25, 75))
		if err != nil {
			e.logger.Warn("center extraction failed", "error", err)
			return
		}
		res.Center = hex
		res.CenterName = Name(hex)
	}()

	wg.Wait()
	return res
}

func percentRect(bounds image.Rectangle, fromX, toX, fromY, toY int) image.Rectangle {
	w := bounds.Dx()
	h := bounds.Dy()
	return image.Rect(
		bounds.Min.X+w*fromX/100,
		bounds.Min.Y+h*fromY/100,
		bounds.Min.X+w*(toX+1)/100,
		bounds.Min.Y+h*(toY+1)/100,
	).Intersect(bounds)
}

func averageHex(ctx context.Context, img image.Image, rect image.Rectangle) (string, error) {
	if rect.Empty() {
		return "", fmt.Errorf("empty region %v", rect)
	}

	var rSum, gSum, bSum, count uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(b >> 8)
			count++
		}
	}

	return fmt.Sprintf("#%02X%02X%02X", uint8(rSum/count), uint8(gSum/count), uint8(bSum/count)), nil
}
