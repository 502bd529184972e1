package usecase

// User-facing reply text. Kept verbatim across handlers so failure modes
// stay recognizable to users regardless of which pipeline stage failed.
const (
	msgWelcome           = "Welcome! Please share your phone number:"
	msgAlreadyRegistered = "Welcome back! You're already registered."
	msgContactSaved      = "Thank you! Your phone number has been saved."
	msgFallback          = "Sorry, I couldn't process your request. Please try again later."
	msgUnsupportedFile   = "Unsupported file type. Please send an image or PDF."
	msgAnalysisFailed    = "Analysis failed. Please try again."
	msgNoDescription     = "No description available."
	msgNoSummary         = "No summary available."
	msgSearchUsage       = "Please provide a search term. Example: /websearch artificial intelligence"

	promptDescribeImage     = "Describe this image in detail."
	promptSummarizeDocument = "Summarize this document:\n"
	promptSearchSummary     = "Summarize the top results for the search query: "

	prefixFileAnalyzed = "File analyzed: "
	searchHeaderFormat = "🔎 **Search Summary for:** %s\n\n%s"
)

// Outcome is the terminal result of dispatching one inbound event. Every
// failure mode collapses into Messages; no error escapes to the platform
// loop.
type Outcome struct {
	Messages       []string
	RequestContact bool
}

func reply(messages ...string) Outcome {
	return Outcome{Messages: messages}
}
