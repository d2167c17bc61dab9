package services

import (
	"context"
)

// ExtractionPrompt is the fixed instruction sent alongside every lineup image.
//
// The rules are advisory: the model is asked to dedupe and normalize, but
// downstream consumers must tolerate duplicates and odd casing anyway.
const ExtractionPrompt = `Analyze this festival lineup image and extract ALL artist/performer names you can see.

Rules:
- Extract only artist/band/performer names
- Do NOT include stage names, dates, times, or other text
- List each artist on a new line
- Normalize capitalization to the artist's official/proper spelling (e.g., "Skrillex" not "SKRILLEX", "Four Tet" not "FOUR TET")
- Keep acronyms and stylized names correct (e.g., "SG Lewis", "RÜFÜS DU SOL", "DJ Trixie Mattel", "Aly & AJ")
- If a name appears multiple times, only list it once
- Order them roughly by how prominently they appear (headliners first, then smaller acts)

Return ONLY the list of names, one per line, with no additional text or formatting.`

// Extractor defines the interface for vision model providers that can read
// artist names off a lineup image.
type Extractor interface {
	// ExtractText sends the image to the provider with the fixed extraction
	// prompt and returns the model's raw text response, one name per line.
	ExtractText(ctx context.Context, image []byte, mediaType string) (string, error)

	// Name returns the name of the provider (e.g., "Anthropic")
	Name() string
}
