package extract

import (
	"encoding/json"
	"errors"
	"testing"
)

type sample struct {
	Title string   `json:"title"`
	Count int      `json:"count"`
	Items []string `json:"items"`
}

var reference = sample{
	Title: "Archaeology Hall",
	Count: 3,
	Items: []string{"masks", "ceramics", "textiles"},
}

func TestJSONRoundTrip(t *testing.T) {
	plain, err := json.Marshal(reference)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"plain", string(plain)},
		{"leading and trailing whitespace", "\n\n  " + string(plain) + "  \n"},
		{"fenced json block", "```json\n" + string(plain) + "\n```"},
		{"bare fenced block", "```\n" + string(plain) + "\n```"},
		{"prose around the object", "Here is your itinerary:\n" + string(plain) + "\nEnjoy the visit!"},
		{"reasoning prefix", "<think>The visitor likes history, so hall A fits.</think>\n" + string(plain)},
		{"reasoning plus fence", "<think>step one\nstep two</think>\n```json\n" + string(plain) + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			if err := JSON(tt.raw, &got); err != nil {
				t.Fatalf("JSON() error = %v", err)
			}
			if got.Title != reference.Title || got.Count != reference.Count {
				t.Errorf("got %+v, want %+v", got, reference)
			}
			if len(got.Items) != len(reference.Items) {
				t.Errorf("Items = %v, want %v", got.Items, reference.Items)
			}
		})
	}
}

func TestJSONFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no json at all", "I could not produce an itinerary, sorry."},
		{"unbalanced braces", `{"title": "oops"`},
		{"reasoning only", "<think>there is nothing to output</think>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			err := JSON(tt.raw, &got)
			if !errors.Is(err, ErrExtractionFailed) {
				t.Errorf("error = %v, want ErrExtractionFailed", err)
			}
		})
	}
}

// Running extraction twice over the same input must give the same outcome.
func TestJSONIdempotent(t *testing.T) {
	raw := "noise before {\"title\":\"Hall\",\"count\":1,\"items\":[\"a\"]} noise after"
	var first, second sample
	if err := JSON(raw, &first); err != nil {
		t.Fatal(err)
	}
	if err := JSON(raw, &second); err != nil {
		t.Fatal(err)
	}
	if first.Title != second.Title || first.Count != second.Count {
		t.Errorf("extraction not deterministic: %+v vs %+v", first, second)
	}
}
