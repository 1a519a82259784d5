package scan

import (
	"fmt"
	"strings"

	"github.com/Bbmxzz/see2hear/internal/colors"
	"github.com/Bbmxzz/see2hear/internal/feature"
	"github.com/Bbmxzz/see2hear/internal/speech"
	"github.com/Bbmxzz/see2hear/internal/translate"
)

const noProductInfo = "No product info available"

// Summarize turns a finished session's result into one utterance. The
// second return is false when there is nothing worth announcing.
func Summarize(sess *Session) (speech.Utterance, bool) {
	if sess.State != StateReady || sess.Result == nil {
		return speech.Utterance{}, false
	}

	switch sess.Feature {
	case feature.ScanText:
		text := strings.Join(sess.Result.Text, " ")
		if strings.TrimSpace(text) == "" {
			return speech.Utterance{}, false
		}
		return speech.ForText(text), true

	case feature.ColorDetector:
		text := colorSummary(sess.Result.Colors)
		if text == "" {
			return speech.Utterance{}, false
		}
		return speech.ForText(text), true

	case feature.QRScanner:
		return speech.ForText(codeSummary(sess.Result.Codes)), true

	case feature.Translate:
		tr := sess.Result.Translation
		if tr == nil || tr.TranslatedText == "" {
			return speech.Utterance{}, false
		}
		locale := translate.TTSLocale(tr.Target)
		return speech.ForTranslation(tr.TranslatedText, locale), true

	case feature.PriceTag:
		text := priceTagSummary(sess.Result)
		if text == "" {
			return speech.Utterance{}, false
		}
		return speech.ForText(text), true
	}

	return speech.Utterance{}, false
}

func colorSummary(res *colors.Result) string {
	if res == nil {
		return ""
	}
	var parts []string
	if res.CenterName != "" {
		parts = append(parts, fmt.Sprintf("The center color is %s", res.CenterName))
	}
	if res.AverageName != "" {
		parts = append(parts, fmt.Sprintf("The overall color is %s", res.AverageName))
	}
	return strings.Join(parts, ". ")
}

func codeSummary(codes []ScannedCode) string {
	var names []string
	for _, c := range codes {
		if c.Product != nil && c.Product.Name != "" && c.Product.Name != "Unknown" {
			names = append(names, c.Product.Name)
		}
	}
	if len(names) == 0 {
		return noProductInfo
	}
	return strings.Join(names, ", ")
}

func priceTagSummary(res *Result) string {
	var parts []string
	for _, tag := range res.PriceTags {
		var fields []string
		if tag.Name != "" {
			fields = append(fields, tag.Name)
		}
		if tag.Price != "" {
			fields = append(fields, fmt.Sprintf("price %s", tag.Price))
		}
		if tag.Quantity != "" {
			fields = append(fields, tag.Quantity)
		}
		if len(fields) > 0 {
			parts = append(parts, strings.Join(fields, ", "))
		}
	}
	return strings.Join(parts, ". ")
}
