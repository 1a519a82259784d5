package scan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Bbmxzz/see2hear/internal/barcode"
	"github.com/Bbmxzz/see2hear/internal/colors"
	"github.com/Bbmxzz/see2hear/internal/feature"
	"github.com/Bbmxzz/see2hear/internal/media"
	"github.com/Bbmxzz/see2hear/internal/pricetag"
	"github.com/Bbmxzz/see2hear/internal/product"
	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/Bbmxzz/see2hear/internal/speech"
	"github.com/Bbmxzz/see2hear/internal/textscan"
	"github.com/Bbmxzz/see2hear/internal/translate"
)

const scanTimeout = 60 * time.Second

// Request starts one scan session. DisplayWidth and DisplayHeight are the
// client's preview dimensions; price-tag results carry boxes mapped into
// that space when they are set.
type Request struct {
	Feature       feature.Feature    `json:"feature"`
	ImageID       string             `json:"image_id,omitempty"`
	Text          string             `json:"text,omitempty"`
	Source        translate.Language `json:"source,omitempty"`
	Target        translate.Language `json:"target,omitempty"`
	DisplayWidth  float64            `json:"display_width,omitempty"`
	DisplayHeight float64            `json:"display_height,omitempty"`
	AutoSpeak     bool               `json:"auto_speak"`
}

// Manager owns the scan lifecycle. At most one scan runs per image at a
// time; a second request for the same image is rejected until the first
// finishes or is cancelled. Cancelling discards results that arrive after
// the fact instead of surfacing them on a stale session.
type Manager struct {
	store      *Store
	media      *media.Store
	ocr        *textscan.Adapter
	extractor  *colors.Extractor
	scanner    *barcode.Scanner
	products   *product.Client
	translator *translate.Client
	priceTags  *pricetag.Pipeline
	controller *speech.Controller
	logger     *slog.Logger

	mu        sync.Mutex
	inFlight  map[string]context.CancelFunc
	byImage   map[string]string
	cancelled map[string]struct{}
}

type ManagerConfig struct {
	Store      *Store
	Media      *media.Store
	OCR        *textscan.Adapter
	Extractor  *colors.Extractor
	Scanner    *barcode.Scanner
	Products   *product.Client
	Translator *translate.Client
	PriceTags  *pricetag.Pipeline
	Controller *speech.Controller
	Logger     *slog.Logger
}

func NewManager(cfg ManagerConfig) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:      cfg.Store,
		media:      cfg.Media,
		ocr:        cfg.OCR,
		extractor:  cfg.Extractor,
		scanner:    cfg.Scanner,
		products:   cfg.Products,
		translator: cfg.Translator,
		priceTags:  cfg.PriceTags,
		controller: cfg.Controller,
		logger:     logger.With("component", "scan_manager"),
		inFlight:   make(map[string]context.CancelFunc),
		byImage:    make(map[string]string),
		cancelled:  make(map[string]struct{}),
	}
}

// Start validates the request, creates a loading session and runs the
// feature in the background.
func (m *Manager) Start(ctx context.Context, req Request) (*Session, error) {
	screen, ok := feature.Route(req.Feature)
	if !ok {
		return nil, fmt.Errorf("unknown feature %q", req.Feature)
	}

	if req.Feature == feature.Translate {
		if strings.TrimSpace(req.Text) == "" {
			return nil, fmt.Errorf("translate: text is required")
		}
		if !translate.Supported(req.Source) || !translate.Supported(req.Target) {
			return nil, fmt.Errorf("translate: unsupported language pair %s->%s", req.Source, req.Target)
		}
	} else {
		if req.ImageID == "" {
			return nil, fmt.Errorf("%s: image_id is required", req.Feature)
		}
		if _, err := m.media.Get(ctx, req.ImageID); err != nil {
			return nil, err
		}
	}

	sess := &Session{
		Feature:       req.Feature,
		Screen:        screen,
		ImageID:       req.ImageID,
		Text:          req.Text,
		Source:        string(req.Source),
		Target:        string(req.Target),
		DisplayWidth:  req.DisplayWidth,
		DisplayHeight: req.DisplayHeight,
		AutoSpeak:     req.AutoSpeak,
		State:         StateLoading,
	}

	m.mu.Lock()
	if req.ImageID != "" {
		if _, busy := m.byImage[req.ImageID]; busy {
			m.mu.Unlock()
			return nil, shared.ErrInFlight
		}
	}
	if err := m.store.Create(ctx, sess); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	runCtx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	m.inFlight[sess.ID] = cancel
	if req.ImageID != "" {
		m.byImage[req.ImageID] = sess.ID
	}
	m.mu.Unlock()

	go m.run(runCtx, sess)
	return sess, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Get(ctx, id)
}

// ActiveCount reports how many scans are currently running.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inFlight)
}

// Cancel stops an in-flight scan and removes the session. The decision is
// taken under the lock: once an ID lands in the cancelled set, the runner
// drops its result instead of writing it back.
func (m *Manager) Cancel(ctx context.Context, id string) error {
	m.mu.Lock()
	if cancel, ok := m.inFlight[id]; ok {
		cancel()
		m.cancelled[id] = struct{}{}
	}
	m.mu.Unlock()
	return m.store.Delete(ctx, id)
}

// Speak announces a finished session's result on demand.
func (m *Manager) Speak(ctx context.Context, id string) error {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	u, ok := Summarize(sess)
	if !ok {
		return fmt.Errorf("session %s has nothing to announce", id)
	}
	return m.controller.Speak(ctx, u)
}

func (m *Manager) run(ctx context.Context, sess *Session) {
	result, err := m.execute(ctx, sess)

	// Release the image before persisting so a follow-up scan can start as
	// soon as the outcome is visible.
	cancelled := m.finish(sess)

	// A cancelled session stays gone. Whatever the feature produced after
	// the cancel is dropped, never written back.
	if cancelled {
		m.logger.Info("scan cancelled, result discarded", "scan_id", sess.ID, "feature", sess.Feature)
		return
	}

	if err != nil {
		sess.State = StateError
		sess.Error = err.Error()
		m.logger.Warn("scan failed", "scan_id", sess.ID, "feature", sess.Feature, "error", err)
	} else {
		sess.State = StateReady
		sess.Result = result
	}

	// Update never recreates a deleted key, so a cancel that slips in
	// after finish still wins: the write is dropped and nothing is spoken.
	if err := m.store.Update(context.Background(), sess); err != nil {
		if err == shared.ErrNotFound {
			m.logger.Info("scan session gone, result discarded", "scan_id", sess.ID, "feature", sess.Feature)
		} else {
			m.logger.Error("failed to update session", "scan_id", sess.ID, "error", err)
		}
		return
	}

	if sess.State == StateReady && sess.AutoSpeak {
		if u, ok := Summarize(sess); ok {
			if err := m.controller.Speak(context.Background(), u); err != nil {
				m.logger.Warn("auto announce failed", "scan_id", sess.ID, "error", err)
			}
		}
	}
}

// finish releases the session's tracking entries and reports whether it
// was cancelled. Taking the decision under the lock pairs with Cancel, so
// a cancel can never fall between the check and the terminal write.
func (m *Manager) finish(sess *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cancel, ok := m.inFlight[sess.ID]; ok {
		cancel()
		delete(m.inFlight, sess.ID)
	}
	if sess.ImageID != "" && m.byImage[sess.ImageID] == sess.ID {
		delete(m.byImage, sess.ImageID)
	}
	if _, ok := m.cancelled[sess.ID]; ok {
		delete(m.cancelled, sess.ID)
		return true
	}
	return false
}

func (m *Manager) execute(ctx context.Context, sess *Session) (*Result, error) {
	switch sess.Feature {
	case feature.ScanText:
		return m.runScanText(ctx, sess)
	case feature.ColorDetector:
		return m.runColors(ctx, sess)
	case feature.QRScanner:
		return m.runCodes(ctx, sess)
	case feature.Translate:
		return m.runTranslate(ctx, sess)
	case feature.PriceTag:
		return m.runPriceTag(ctx, sess)
	}
	return nil, fmt.Errorf("unknown feature %q", sess.Feature)
}

func (m *Manager) runScanText(ctx context.Context, sess *Session) (*Result, error) {
	data, err := m.media.Bytes(ctx, sess.ImageID)
	if err != nil {
		return nil, err
	}
	lines := m.ocr.Recognize(ctx, data, textscan.ScriptJapanese)
	return &Result{Text: lines}, nil
}

func (m *Manager) runColors(ctx context.Context, sess *Session) (*Result, error) {
	img, err := m.media.Image(ctx, sess.ImageID)
	if err != nil {
		return nil, err
	}
	return &Result{Colors: m.extractor.Extract(ctx, img)}, nil
}

func (m *Manager) runCodes(ctx context.Context, sess *Session) (*Result, error) {
	img, err := m.media.Image(ctx, sess.ImageID)
	if err != nil {
		return nil, err
	}
	codes, err := m.scanner.Decode(img)
	if err != nil {
		return nil, err
	}

	// Lookups run one at a time. The result screen reads product names in
	// scan order and partial failures only lose their own entry.
	scanned := make([]ScannedCode, 0, len(codes))
	for _, code := range codes {
		sc := ScannedCode{Code: code}
		if code.Kind == barcode.KindBarcode {
			info, err := m.products.Lookup(ctx, code.Value)
			if err != nil {
				m.logger.Warn("product lookup failed", "code", code.Value, "error", err)
			} else {
				sc.Product = info
			}
		}
		scanned = append(scanned, sc)
	}
	return &Result{Codes: scanned}, nil
}

func (m *Manager) runTranslate(ctx context.Context, sess *Session) (*Result, error) {
	source := translate.Language(sess.Source)
	target := translate.Language(sess.Target)
	out, err := m.translator.Translate(ctx, translate.Request{
		Text:   sess.Text,
		Source: source,
		Target: target,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Translation: &TranslationResult{
		SourceText:     sess.Text,
		TranslatedText: out,
		Source:         source,
		Target:         target,
	}}, nil
}

func (m *Manager) runPriceTag(ctx context.Context, sess *Session) (*Result, error) {
	img, err := m.media.Image(ctx, sess.ImageID)
	if err != nil {
		return nil, err
	}
	data, err := m.media.Bytes(ctx, sess.ImageID)
	if err != nil {
		return nil, err
	}
	tags, det, err := m.priceTags.Read(ctx, img, data)
	if err != nil {
		return nil, err
	}
	return &Result{
		PriceTags:    tags,
		Detection:    det,
		DisplayBoxes: displayBoxes(tags, det, sess.DisplayWidth, sess.DisplayHeight),
	}, nil
}

// displayBoxes maps tag boxes from the detector's pixel space into the
// client's preview space. Without display dimensions there is nothing to
// map to and the raw detection stands on its own.
func displayBoxes(tags []pricetag.Tag, det *pricetag.Detection, width, height float64) []pricetag.Box {
	if det == nil || width <= 0 || height <= 0 {
		return nil
	}
	boxes := make([]pricetag.Box, len(tags))
	for i, tag := range tags {
		boxes[i] = pricetag.ScaleBox(tag.Box, det.Image.Width, det.Image.Height, width, height)
	}
	return boxes
}
