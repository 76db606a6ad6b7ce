package summarizer

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// PunktTokenizer detects sentence boundaries with the trained English
// punkt model shipped by neurosnap/sentences.
type PunktTokenizer struct {
	tok *sentences.DefaultSentenceTokenizer
}

func NewPunktTokenizer() (*PunktTokenizer, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("summarizer: failed to load sentence tokenizer: %w", err)
	}
	return &PunktTokenizer{tok: tok}, nil
}

func (p *PunktTokenizer) Sentences(text string) []string {
	raw := p.tok.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
