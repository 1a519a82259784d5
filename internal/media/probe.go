package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// ErrSizeProbe is returned when an upload cannot be decoded far enough to
// learn its pixel dimensions.
var ErrSizeProbe = errors.New("image dimensions unavailable")

// ProbeSize reads just the image header and returns the pixel dimensions.
func ProbeSize(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, ErrSizeProbe
	}
	return cfg.Width, cfg.Height, nil
}

// Decode returns the full decoded image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}
