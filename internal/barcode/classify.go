package barcode

import "regexp"

// Kind classifies a decoded value for presentation.
type Kind string

const (
	KindBarcode Kind = "barcode"
	KindURL     Kind = "url"
	KindText    Kind = "text"
)

var (
	barcodePattern = regexp.MustCompile(`^[0-9]{8,14}$`)
	urlPattern     = regexp.MustCompile(`^https?://[\w\-._~:/?#[\]@!$&'()*+,;=.]+$`)
)

// Classify tags a decoded value. The digit-length test runs before the URL
// test: an 8-14 digit string is always a barcode, even if it would also
// match the URL pattern.
func Classify(value string) Kind {
	if barcodePattern.MatchString(value) {
		return KindBarcode
	}
	if urlPattern.MatchString(value) {
		return KindURL
	}
	return KindText
}
