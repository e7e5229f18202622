// Package extract recovers JSON objects from raw text-completion output.
//
// Model responses are rarely clean: they arrive wrapped in fenced code
// blocks, prefixed with chatter, or interleaved with reasoning sections.
// The extractor runs an ordered chain of pure strategies and stops at the
// first one that yields a valid object.
package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrExtractionFailed is returned when every strategy fails. It is the only
// error callers are expected to branch on.
var ErrExtractionFailed = errors.New("no JSON object could be extracted from the response")

// Strategy attempts to recover a JSON document from raw text.
type Strategy struct {
	Name  string
	Apply func(raw string) (string, bool)
}

var fencedBlock = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// reasoningSection matches the paired thinking markers some models emit
// before their actual answer.
var reasoningSection = regexp.MustCompile(`(?is)<think>.*?</think>`)

// strategies are tried in order; each returns a candidate JSON string.
var strategies = []Strategy{
	{
		Name: "direct",
		Apply: func(raw string) (string, bool) {
			return raw, raw != ""
		},
	},
	{
		Name: "trimmed",
		Apply: func(raw string) (string, bool) {
			trimmed := strings.TrimSpace(raw)
			return trimmed, trimmed != ""
		},
	},
	{
		Name: "fenced_block",
		Apply: func(raw string) (string, bool) {
			m := fencedBlock.FindStringSubmatch(raw)
			if m == nil {
				return "", false
			}
			return strings.TrimSpace(m[1]), true
		},
	},
	{
		Name: "brace_scan",
		Apply: func(raw string) (string, bool) {
			start := strings.Index(raw, "{")
			end := strings.LastIndex(raw, "}")
			if start == -1 || end <= start {
				return "", false
			}
			return raw[start : end+1], true
		},
	},
}

// JSON recovers a JSON object from raw completion output and unmarshals it
// into out. Strategies run in order: direct parse, whitespace trim, fenced
// code block, brace scan; if all fail the reasoning sections are stripped
// and the chain runs once more. The whole chain is deterministic: the same
// input always yields the same result or the same failure.
func JSON(raw string, out any) error {
	if err := runChain(raw, out); err == nil {
		return nil
	}

	stripped := reasoningSection.ReplaceAllString(raw, "")
	if stripped != raw {
		if err := runChain(stripped, out); err == nil {
			return nil
		}
	}

	return ErrExtractionFailed
}

func runChain(raw string, out any) error {
	for _, s := range strategies {
		candidate, ok := s.Apply(raw)
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(candidate), out); err == nil {
			return nil
		}
	}
	return ErrExtractionFailed
}
