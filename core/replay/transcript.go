package replay

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// Turn 对话转写中的一轮发言
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// speakerLine matches the first line of a turn: "SPEAKER_NAME: utterance".
var speakerLine = regexp.MustCompile(`^([A-Z][A-Z0-9_]*):\s*(.*)$`)

// ParseTranscript parses a stored conversation transcript. Turns are
// separated by blank lines; each turn starts with "SPEAKER: text" and the
// utterance may continue over following lines within the same block.
func ParseTranscript(raw string) ([]Turn, error) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	var turns []Turn
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.SplitN(block, "\n", 2)
		m := speakerLine.FindStringSubmatch(lines[0])
		if m == nil {
			return nil, fmt.Errorf("transcript block does not match SPEAKER: text pattern: %q", lines[0])
		}

		text := m[2]
		if len(lines) == 2 {
			text = strings.TrimSpace(text + " " + strings.Join(strings.Fields(lines[1]), " "))
		}
		turns = append(turns, Turn{
			Speaker: m[1],
			Text:    strings.TrimSpace(text),
		})
	}

	if len(turns) == 0 {
		return nil, fmt.Errorf("transcript contains no turns")
	}
	return turns, nil
}

// LoadTranscript reads and parses a transcript file. A missing file is a
// precondition failure for the replay workflow.
func LoadTranscript(path string) ([]Turn, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}
	return ParseTranscript(string(raw))
}

// TurnDelay returns how long a turn stays on screen before the next one
// appears: 60ms per character, never less than 3 seconds. Mirrors real
// speech pacing for the operator watching the live recording.
func TurnDelay(text string) time.Duration {
	d := time.Duration(len(text)) * 60 * time.Millisecond
	if d < 3*time.Second {
		d = 3 * time.Second
	}
	return d
}
