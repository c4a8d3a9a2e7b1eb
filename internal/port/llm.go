package port

// LLM turns free text into generated text. Used as an opaque
// text-to-structured-data service by the profile extractor.
type LLM interface {
	// Generate generates text based on the prompt.
	Generate(prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
