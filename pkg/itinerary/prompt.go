package itinerary

import (
	"fmt"
	"strings"

	"museum-itinerary-be/pkg/knowledge"
)

// buildGroundedPrompt instructs the provider to rephrase the curated facts
// into an engaging narrative without inventing anything beyond them.
func buildGroundedPrompt(req EnrichRequest, entry knowledge.Entry) string {
	var b strings.Builder
	c := req.Candidate
	items := itemTarget(req.Detail, true)

	b.WriteString("<task>\n")
	fmt.Fprintf(&b, "You are an expert guide of this museum writing the stop \"%s\" of a personalized visit for %s.\n", c.Name, req.VisitorName)
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "The visitor's interests: %s.\n", strings.Join(req.Interests, ", "))
	}
	fmt.Fprintf(&b, "The visitor will spend about %d minutes here.\n", req.Minutes)
	b.WriteString("</task>\n\n")

	b.WriteString("<curated_facts>\n")
	b.WriteString("CRITICAL: Ground every statement in the facts below. Do NOT invent objects, dates or anecdotes that are not listed.\n\n")
	fmt.Fprintf(&b, "Area: %s\n", entry.Name)
	if entry.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", entry.Description)
	}
	if entry.History != "" {
		fmt.Fprintf(&b, "History: %s\n", entry.History)
	}
	writeFactList(&b, "Highlighted objects", entry.HighlightedObjects)
	writeFactList(&b, "Curiosities", entry.Curiosities)
	writeFactList(&b, "Principal themes", entry.PrincipalThemes)
	writeFactList(&b, "Detailed narrative", entry.DetailedNarrative)
	b.WriteString("</curated_facts>\n\n")

	writeOutputFormat(&b, req, items, narrativeLength(req.Detail))
	return b.String()
}

// buildGenerativePrompt is the fallback when the knowledge base is thin:
// the provider is described the area and asked for plausible educational
// content on its own knowledge.
func buildGenerativePrompt(req EnrichRequest) string {
	var b strings.Builder
	c := req.Candidate
	items := itemTarget(req.Detail, false)

	b.WriteString("<task>\n")
	fmt.Fprintf(&b, "You are an expert museum guide writing the stop \"%s\" of a personalized visit for %s.\n", c.Name, req.VisitorName)
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "The visitor's interests: %s.\n", strings.Join(req.Interests, ", "))
	}
	fmt.Fprintf(&b, "The visitor will spend about %d minutes here.\n", req.Minutes)
	b.WriteString("</task>\n\n")

	b.WriteString("<area>\n")
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Category: %s\n", c.Category)
	if c.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", c.Description)
	}
	b.WriteString("Write plausible, educational museum content appropriate for this kind of exhibit. Stay general where you are unsure; never state precise dates or object names you cannot know.\n")
	b.WriteString("</area>\n\n")

	writeOutputFormat(&b, req, items, narrativeLength(req.Detail))
	return b.String()
}

func writeFactList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

func narrativeLength(detail DetailLevel) string {
	if detail == DetailDeep {
		return "7-10 sentences"
	}
	return "5-7 sentences"
}

func writeOutputFormat(b *strings.Builder, req EnrichRequest, items int, length string) {
	b.WriteString("<output_format>\n")
	b.WriteString("Respond ONLY with a JSON object. No text before it, no text after it, no code fences.\n")
	b.WriteString("{\n")
	if req.Opening {
		b.WriteString("  \"itinerary_title\": \"An attractive title for the whole visit\",\n")
		b.WriteString("  \"itinerary_description\": \"4-5 complete sentences describing the tour and why it is special\",\n")
	}
	b.WriteString("  \"introduction\": \"2-3 sentences introducing this area\",\n")
	fmt.Fprintf(b, "  \"contextual_history\": \"One LONG paragraph of %s about the history and context: era, culture, key dates, why it matters\",\n", length)
	fmt.Fprintf(b, "  \"curiosities\": [\"%d fascinating facts, each 2-3 sentences of specific content\"],\n", items)
	fmt.Fprintf(b, "  \"what_to_observe\": [\"%d specific things to look for, each 2-3 sentences explaining what and why\"],\n", items)
	b.WriteString("  \"recommendation\": \"2-3 sentences of practical advice for this area\"\n")
	b.WriteString("}\n")
	b.WriteString("Rules:\n")
	fmt.Fprintf(b, "1. curiosities and what_to_observe must each have exactly %d items.\n", items)
	b.WriteString("2. Do not use line breaks inside string values.\n")
	b.WriteString("3. Every item must carry real content, nothing generic.\n")
	b.WriteString("</output_format>")
}
