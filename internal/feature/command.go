package feature

import "strings"

// Action is what a matched voice command asks the client to do.
type Action string

const (
	ActionNavigate Action = "navigate"
	ActionSpeak    Action = "speak"
	ActionStop     Action = "stop"
	ActionHelp     Action = "help"
)

// Command is the result of matching a raw transcript against the keyword
// table. Feature is only set for navigation commands.
type Command struct {
	Action  Action  `json:"action"`
	Feature Feature `json:"feature,omitempty"`
}

type keywordRule struct {
	keywords []string
	command  Command
}

// Rules are checked in order: navigation phrases first, then the generic
// speak/stop/help words, so "read text" navigates instead of re-speaking.
var commandRules = []keywordRule{
	{[]string{"scan text", "read text", "text"}, Command{Action: ActionNavigate, Feature: ScanText}},
	{[]string{"color", "colour"}, Command{Action: ActionNavigate, Feature: ColorDetector}},
	{[]string{"translate"}, Command{Action: ActionNavigate, Feature: Translate}},
	{[]string{"barcode", "qr code", "qr"}, Command{Action: ActionNavigate, Feature: QRScanner}},
	{[]string{"price tag", "price"}, Command{Action: ActionNavigate, Feature: PriceTag}},
	{[]string{"speak", "read"}, Command{Action: ActionSpeak}},
	{[]string{"stop", "quiet"}, Command{Action: ActionStop}},
	{[]string{"help"}, Command{Action: ActionHelp}},
}

// MatchCommand maps a speech transcript to a command by simple keyword
// containment. Unmatched transcripts are ignored by the caller.
func MatchCommand(transcript string) (Command, bool) {
	t := strings.ToLower(strings.TrimSpace(transcript))
	if t == "" {
		return Command{}, false
	}
	for _, rule := range commandRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.command, true
			}
		}
	}
	return Command{}, false
}
