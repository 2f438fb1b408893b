package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptExtract is the per-chunk extraction system prompt.
	// This prompt has no format placeholders.
	PromptExtract = "extract"

	// PromptSummarise synthesises the aggregated data into a narrative.
	// The template expects a %s placeholder for the serialised aggregate.
	PromptSummarise = "summarise"

	// PromptValidate is the rule-validation judging prompt.
	// The template expects %s (rules), %s (summary) and %s (serialised
	// aggregate) placeholders, in that order.
	PromptValidate = "validate"
)

// PromptStoreAware is an optional interface for services that can use custom
// prompts. Services implementing this interface can have their prompt
// templates customised by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
