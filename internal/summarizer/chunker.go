package summarizer

import "strings"

// SentenceTokenizer splits text into an ordered sequence of sentences. It
// is injected rather than fixed so the chunking logic stays agnostic to
// which boundary detector is in use.
type SentenceTokenizer interface {
	Sentences(text string) []string
}

// ChunkSentences splits text into chunks of whole sentences, each within
// the chunkSize word budget. Sentences are never cut: a single sentence
// longer than the budget becomes a chunk of its own. Chunks partition the
// sentence sequence exactly, in original order, with the sentences inside
// a chunk joined by a single space. Text with no sentences yields nil.
func ChunkSentences(tok SentenceTokenizer, text string, chunkSize int) []string {
	var chunks []string
	var current []string
	currentLen := 0
	for _, sent := range tok.Sentences(text) {
		words := len(strings.Fields(sent))
		if currentLen+words > chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			currentLen = 0
		}
		current = append(current, sent)
		currentLen += words
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
