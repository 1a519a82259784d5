package textscan

// Script is the language hint passed to the OCR engine.
type Script string

const (
	ScriptLatin    Script = "latin"
	ScriptJapanese Script = "japanese"
	ScriptKorean   Script = "korean"
	ScriptThai     Script = "thai"
)

// tessLanguages maps a script hint to the tesseract language packs loaded
// for it. Japanese tags mix scripts, so latin rides along.
var tessLanguages = map[Script][]string{
	ScriptLatin:    {"eng"},
	ScriptJapanese: {"jpn", "eng"},
	ScriptKorean:   {"kor", "eng"},
	ScriptThai:     {"tha", "eng"},
}

// Languages resolves a script hint, defaulting to japanese like the app's
// scan screen did.
func Languages(s Script) []string {
	if langs, ok := tessLanguages[s]; ok {
		return langs
	}
	return tessLanguages[ScriptJapanese]
}
