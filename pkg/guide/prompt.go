package guide

import (
	"strings"

	"github.com/citystride/wayfarer/pkg/location"
)

// PromptConfig enumerates the optional fields that shape a landmark
// analysis request. BuildPrompt is a pure function of this struct, so
// prompt assembly is testable without any network concerns.
type PromptConfig struct {
	// Landmark is an optional hint from the traveler about what they
	// photographed.
	Landmark string

	// Context is free-form extra context from the traveler.
	Context string

	// Language of the narration. Empty means the backend default.
	Language string

	// Position enriches the prompt when geolocation succeeded. Never
	// required.
	Position *location.Position
}

func BuildPrompt(config PromptConfig) string {
	var lines []string

	lines = append(lines, "Identify the landmark or scene in the photo and narrate it for a curious traveler: what it is, why it matters, and one detail most visitors miss.")

	if config.Landmark != "" {
		lines = append(lines, "The traveler believes it is: "+config.Landmark)
	}

	if config.Position != nil {
		lines = append(lines, "The photo was taken near: "+config.Position.String())
	}

	if config.Context != "" {
		lines = append(lines, "Additional context from the traveler: "+config.Context)
	}

	if config.Language != "" {
		lines = append(lines, "Respond in "+config.Language+".")
	}

	return strings.Join(lines, "\n")
}

// IllustrationPrompt derives the stage-two request from the analysis text.
func IllustrationPrompt(analysis string) string {
	return "Create a stylized travel-poster illustration of the scene described below. No text or lettering in the image.\n\n" + analysis
}
