package scan

import (
	"fmt"
	"time"

	"github.com/Bbmxzz/see2hear/internal/barcode"
	"github.com/Bbmxzz/see2hear/internal/colors"
	"github.com/Bbmxzz/see2hear/internal/feature"
	"github.com/Bbmxzz/see2hear/internal/pricetag"
	"github.com/Bbmxzz/see2hear/internal/product"
	"github.com/Bbmxzz/see2hear/internal/translate"
)

// State is the lifecycle of one scan session.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// ScannedCode pairs a decoded code with its product lookup, when the code
// turned out to be a barcode with a known product.
type ScannedCode struct {
	barcode.Code
	Product *product.Info `json:"product,omitempty"`
}

// Result holds the output of exactly one feature. Which field is set
// follows the session's feature. DisplayBoxes mirror PriceTags mapped into
// the client's preview space when the request carried display dimensions.
type Result struct {
	Text         []string            `json:"text,omitempty"`
	Colors       *colors.Result      `json:"colors,omitempty"`
	Codes        []ScannedCode       `json:"codes,omitempty"`
	Translation  *TranslationResult  `json:"translation,omitempty"`
	PriceTags    []pricetag.Tag      `json:"price_tags,omitempty"`
	Detection    *pricetag.Detection `json:"detection,omitempty"`
	DisplayBoxes []pricetag.Box      `json:"display_boxes,omitempty"`
}

// TranslationResult is the translate feature's output.
type TranslationResult struct {
	SourceText     string             `json:"source_text"`
	TranslatedText string             `json:"translated_text"`
	Source         translate.Language `json:"source"`
	Target         translate.Language `json:"target"`
}

// Session is one run of a recognition feature over a captured image or,
// for translation, over submitted text. Sessions live in redis with a TTL
// and are never persisted past it.
type Session struct {
	ID            string          `json:"id"`
	Feature       feature.Feature `json:"feature"`
	Screen        string          `json:"screen"`
	ImageID       string          `json:"image_id,omitempty"`
	Text          string          `json:"text,omitempty"`
	Source        string          `json:"source,omitempty"`
	Target        string          `json:"target,omitempty"`
	DisplayWidth  float64         `json:"display_width,omitempty"`
	DisplayHeight float64         `json:"display_height,omitempty"`
	AutoSpeak     bool            `json:"auto_speak"`
	State         State           `json:"state"`
	Result        *Result         `json:"result,omitempty"`
	Error         string          `json:"error,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (s *Session) key() string {
	return fmt.Sprintf("scan:%s", s.ID)
}
