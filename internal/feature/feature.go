package feature

// Feature selects which recognition workflow a captured image is routed to.
type Feature string

const (
	ScanText      Feature = "ScanText"
	ColorDetector Feature = "ColorDetector"
	Translate     Feature = "Translate"
	QRScanner     Feature = "QRScanner"
	PriceTag      Feature = "PriceTag"
)

var screens = map[Feature]string{
	ScanText:      "Scantext",
	ColorDetector: "ColorDetector",
	Translate:     "Translate",
	QRScanner:     "QRScanner",
	PriceTag:      "Pricetag",
}

// Route maps a feature to its result screen. Unknown features map to
// nothing, which callers treat as a no-op rather than an error.
func Route(f Feature) (string, bool) {
	screen, ok := screens[f]
	return screen, ok
}

// All lists every declared feature in a stable order.
func All() []Feature {
	return []Feature{ScanText, ColorDetector, Translate, QRScanner, PriceTag}
}
