package media

import "time"

// Source records how an image entered the system.
type Source string

const (
	SourceCamera  Source = "camera"
	SourceLibrary Source = "library"
)

// CapturedImage is the handle every recognition adapter works from. The
// dimensions are probed synchronously at upload time because bounding-box
// overlays downstream need the source resolution.
type CapturedImage struct {
	ID        string    `json:"id"`
	Source    Source    `json:"source"`
	Path      string    `json:"path"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *CapturedImage) metaKey() string {
	return "media:" + c.ID + ":meta"
}

func (c *CapturedImage) dataKey() string {
	return "media:" + c.ID + ":data"
}
