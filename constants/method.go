package constants

// ParseMethod identifies how a brochure was turned into structured data.
type ParseMethod string

// Stable values (logged and returned to clients).
const (
	MethodPDFText     ParseMethod = "pdf-text"     // deterministic pattern extraction over embedded text
	MethodLLMFallback ParseMethod = "llm-fallback" // document-understanding service
)
