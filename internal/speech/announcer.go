package speech

import (
	"context"
	"regexp"
)

// Utterance is one fully-configured speech request. Language, rate and
// voice travel with every call so no global engine state is mutated.
type Utterance struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Voice    string  `json:"voice,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
}

// Announcer is the single audio output channel.
type Announcer interface {
	Speak(ctx context.Context, u Utterance) error
	Stop(ctx context.Context) error
}

var latinPattern = regexp.MustCompile(`[a-zA-Z]`)

// ForText builds an utterance with the scan screens' language heuristic:
// any latin letters mean English at rate 0.5, otherwise Japanese at 0.7.
func ForText(text string) Utterance {
	if latinPattern.MatchString(text) {
		return Utterance{Text: text, Language: "en-US", Rate: 0.5}
	}
	return Utterance{Text: text, Language: "ja-JP", Rate: 0.7}
}

// ForTranslation reads translated text in the target locale. Translation
// playback uses slightly slower rates than scan playback.
func ForTranslation(text, locale string) Utterance {
	rate := 0.5
	if locale == "en-US" {
		rate = 0.4
	}
	return Utterance{Text: text, Language: locale, Rate: rate}
}
