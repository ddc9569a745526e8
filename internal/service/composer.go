package service

import (
	"fmt"
	"strings"

	"github.com/craftedbits/resumatch/internal/model"
)

// promptTemplate is the fixed instructional preamble plus the slots the
// retrieved material is rendered into. User-supplied content is only ever
// substituted below the Details heading, never into the guidance above it.
const promptTemplate = `Generate a resume with the following details:

Guidelines:
Be specific and use active voice.
Avoid errors, passive language, and personal pronouns.
Ensure consistency and readability.

Avoid:
Spelling/grammar errors, missing contact info, poor organization.

Action Verbs Examples:
Leadership: Led, Managed
Communication: Presented, Promoted
Technical: Engineered, Programmed
Organizational: Organized, Implemented

Details:
Job Description: %s
Name: %s
Contact: %s
Experience: %s
Education: %s
Projects: %s
Skills: %s

Formatting:
Start with name and contact.
List experience, education, projects and skills in order.
Use headings and bullet points.

Instruction:
Do not add any extra text or headings from yourself; use only the provided details.`

// ComposePrompt renders the retrieved, deduplicated per-category facts and
// the identity fields into a single generation prompt. Pure and
// deterministic: identical inputs produce byte-identical output. Section
// order is fixed (experience, education, projects, skills); a category with
// no facts renders as an empty section rather than being dropped.
func ComposePrompt(identity model.Identity, results map[model.Category][]model.Fact, queryText string) string {
	return fmt.Sprintf(promptTemplate,
		queryText,
		identity.Name,
		identity.Contact,
		sectionContent(results[model.CategoryExperience]),
		sectionContent(results[model.CategoryEducation]),
		sectionContent(results[model.CategoryProject]),
		sectionContent(results[model.CategorySkill]),
	)
}

// sectionContent joins fact contents with newlines in retrieval order, most
// relevant first.
func sectionContent(facts []model.Fact) string {
	if len(facts) == 0 {
		return ""
	}
	contents := make([]string, 0, len(facts))
	for _, fact := range facts {
		contents = append(contents, fact.Content)
	}
	return strings.Join(contents, "\n")
}
