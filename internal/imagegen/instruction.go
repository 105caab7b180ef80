package imagegen

import (
	"fmt"

	"timelessme/internal/domain"
)

const instructionTemplate = `Recreate this photograph to look like it was taken in the %[1]s.

Key instructions:
1. **Facial and Positional Consistency**: You MUST NOT change the person's face, facial features, expression, or physical characteristics in any way. Maintain 100%% facial consistency. The person's pose and position in the photo must also remain exactly the same.
2. **Thematic Transformation**: Only change the clothing, hairstyle, and the background environment to match the styles and atmosphere of the %[1]s.
3. **Authenticity and Variety**: Draw deep inspiration from the fashion, culture, and aesthetics of the %[1]s. Each time you generate an image, create a completely new, unique, and random variation. Never use the same environment, clothing, or hairstyle for the same decade.
4. **Clean Image**: The result should be a realistic photograph from that time period. Do not add any dates, text, or watermarks to the final image.`

// BuildInstruction renders the restyling prompt for a decade. Variation
// between runs is requested from the model; the text itself is fixed.
func BuildInstruction(decade domain.Decade) string {
	return fmt.Sprintf(instructionTemplate, decade)
}
