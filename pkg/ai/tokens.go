package ai

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/project-simone/simone/pkg/logger"
)

const encodingName = "o200k_base"

var encoding = sync.OnceValue(func() *tiktoken.Tiktoken {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		logger.Warn("[AI] Token encoding unavailable, estimating by length", "encoding", encodingName, "err", err)
		return nil
	}
	return enc
})

// CountTokens returns the number of tokens text occupies in the prompt.
// When the encoding cannot be loaded it estimates four characters per token.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if enc := encoding(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return (utf8.RuneCountInString(text) + 3) / 4
}

// TruncateToTokens cuts text so it fits into maxTokens.
func TruncateToTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	if CountTokens(text) <= maxTokens {
		return text
	}
	if enc := encoding(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		return strings.ToValidUTF8(enc.Decode(tokens[:maxTokens]), "")
	}
	runes := []rune(text)
	return string(runes[:min(len(runes), maxTokens*4)])
}

// ChunkText splits text into pieces of at most size tokens where
// consecutive chunks share overlap tokens.
func ChunkText(text string, size, overlap int) []string {
	if text == "" || size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	enc := encoding()
	if enc == nil {
		runes := []rune(text)
		return window(len(runes), size*4, overlap*4, func(start, end int) string {
			return string(runes[start:end])
		})
	}

	tokens := enc.Encode(text, nil, nil)
	return window(len(tokens), size, overlap, func(start, end int) string {
		return enc.Decode(tokens[start:end])
	})
}

func window(n, size, overlap int, slice func(start, end int) string) []string {
	var chunks []string
	for start := 0; start < n; start += size - overlap {
		end := min(start+size, n)
		chunks = append(chunks, slice(start, end))
		if end == n {
			break
		}
	}
	return chunks
}
