package scan

import (
	"testing"

	"github.com/Bbmxzz/see2hear/internal/barcode"
	"github.com/Bbmxzz/see2hear/internal/colors"
	"github.com/Bbmxzz/see2hear/internal/feature"
	"github.com/Bbmxzz/see2hear/internal/product"
)

func TestSummarizeText(t *testing.T) {
	sess := &Session{
		Feature: feature.ScanText,
		State:   StateReady,
		Result:  &Result{Text: []string{"Hello", "World"}},
	}

	u, ok := Summarize(sess)
	if !ok {
		t.Fatal("expected an utterance")
	}
	if u.Text != "Hello World" {
		t.Errorf("text = %q", u.Text)
	}
	if u.Language != "en-US" || u.Rate != 0.5 {
		t.Errorf("unexpected utterance config %+v", u)
	}
}

func TestSummarizeJapaneseText(t *testing.T) {
	sess := &Session{
		Feature: feature.ScanText,
		State:   StateReady,
		Result:  &Result{Text: []string{"こんにちは"}},
	}

	u, ok := Summarize(sess)
	if !ok {
		t.Fatal("expected an utterance")
	}
	if u.Language != "ja-JP" || u.Rate != 0.7 {
		t.Errorf("unexpected utterance config %+v", u)
	}
}

func TestSummarizeCodesWithProducts(t *testing.T) {
	sess := &Session{
		Feature: feature.QRScanner,
		State:   StateReady,
		Result: &Result{Codes: []ScannedCode{
			{Code: barcode.Code{Value: "12345678", Kind: barcode.KindBarcode}, Product: &product.Info{Name: "Green Tea"}},
			{Code: barcode.Code{Value: "87654321", Kind: barcode.KindBarcode}, Product: &product.Info{Name: "Rice Crackers"}},
		}},
	}

	u, ok := Summarize(sess)
	if !ok {
		t.Fatal("expected an utterance")
	}
	if u.Text != "Green Tea, Rice Crackers" {
		t.Errorf("text = %q", u.Text)
	}
}

func TestSummarizeCodesWithoutProducts(t *testing.T) {
	sess := &Session{
		Feature: feature.QRScanner,
		State:   StateReady,
		Result: &Result{Codes: []ScannedCode{
			{Code: barcode.Code{Value: "https://example.com", Kind: barcode.KindURL}},
			{Code: barcode.Code{Value: "12345678", Kind: barcode.KindBarcode}, Product: &product.Info{Name: "Unknown"}},
		}},
	}

	u, ok := Summarize(sess)
	if !ok {
		t.Fatal("expected an utterance")
	}
	if u.Text != "No product info available" {
		t.Errorf("text = %q", u.Text)
	}
}

func TestSummarizeTranslation(t *testing.T) {
	sess := &Session{
		Feature: feature.Translate,
		State:   StateReady,
		Result: &Result{Translation: &TranslationResult{
			SourceText:     "hello",
			TranslatedText: "こんにちは",
			Source:         "EN",
			Target:         "JA",
		}},
	}

	u, ok := Summarize(sess)
	if !ok {
		t.Fatal("expected an utterance")
	}
	if u.Text != "こんにちは" {
		t.Errorf("text = %q", u.Text)
	}
	if u.Language != "ja-JP" || u.Rate != 0.5 {
		t.Errorf("unexpected utterance config %+v", u)
	}
}

func TestSummarizeEnglishTranslationIsSlower(t *testing.T) {
	sess := &Session{
		Feature: feature.Translate,
		State:   StateReady,
		Result: &Result{Translation: &TranslationResult{
			TranslatedText: "hello",
			Source:         "JA",
			Target:         "EN",
		}},
	}

	u, ok := Summarize(sess)
	if !ok {
		t.Fatal("expected an utterance")
	}
	if u.Language != "en-US" || u.Rate != 0.4 {
		t.Errorf("unexpected utterance config %+v", u)
	}
}

func TestSummarizeColors(t *testing.T) {
	sess := &Session{
		Feature: feature.ColorDetector,
		State:   StateReady,
		Result: &Result{Colors: &colors.Result{
			CenterName:  "red",
			AverageName: "orange",
		}},
	}

	u, ok := Summarize(sess)
	if !ok {
		t.Fatal("expected an utterance")
	}
	if u.Text != "The center color is red. The overall color is orange" {
		t.Errorf("text = %q", u.Text)
	}
}

func TestSummarizeNothingToSay(t *testing.T) {
	tests := []struct {
		name string
		sess *Session
	}{
		{name: "loading session", sess: &Session{Feature: feature.ScanText, State: StateLoading}},
		{name: "error session", sess: &Session{Feature: feature.ScanText, State: StateError, Error: "boom"}},
		{name: "ready without result", sess: &Session{Feature: feature.ScanText, State: StateReady}},
		{name: "empty text", sess: &Session{Feature: feature.ScanText, State: StateReady, Result: &Result{Text: []string{" "}}}},
		{name: "empty colors", sess: &Session{Feature: feature.ColorDetector, State: StateReady, Result: &Result{Colors: &colors.Result{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Summarize(tt.sess); ok {
				t.Error("expected no utterance")
			}
		})
	}
}
