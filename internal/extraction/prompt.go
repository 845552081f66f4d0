package extraction

import "strings"

var promptHead = strings.Join([]string{
	"",
	"   <s> [INST] Given the following conversation between a doctor and a patient, please extract and provide the following information in JSON format:",
	"    1. Medicines prescribed.",
	"    2. Timings for when to take medicine.",
	"    3. Exercises or other non-medicinal recommendations.",
	"    4. Diagnosis by the doctor.",
	"    5. Next appointment or follow-up details.",
	"    6. Tests that the patient needs to undergo.",
	"    7. A summary of the conversation.",
	"",
	"    Maintain the order. And if any of these are not found in the conversation, you can skip it completely.",
	"    Conversation:",
	"    ",
}, "\n")

var promptTail = strings.Join([]string{
	"",
	"    ",
	"    Please provide the output as a JSON object with keys: 'medicines', 'exercises', 'diagnosis', 'next_appointment', 'tests', and 'summary'. [/INST] </s>",
	`    Don't have any key as two words. For example: use "next_appointment" rather than "next appointment"`,
	"    ",
}, "\n")

// BuildPrompt embeds transcript verbatim in the extraction instructions.
func BuildPrompt(transcript string) string {
	return promptHead + transcript + promptTail
}
