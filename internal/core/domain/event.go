package domain

// EventKind identifies which variant of an InboundEvent is active.
type EventKind int

const (
	EventRegistration EventKind = iota
	EventContactShare
	EventTextMessage
	EventFileUpload
	EventSearchCommand
)

func (k EventKind) String() string {
	switch k {
	case EventRegistration:
		return "registration"
	case EventContactShare:
		return "contact_share"
	case EventTextMessage:
		return "text_message"
	case EventFileUpload:
		return "file_upload"
	case EventSearchCommand:
		return "search_command"
	default:
		return "unknown"
	}
}

// FileKind distinguishes the two attachment shapes the platform delivers.
type FileKind int

const (
	FilePhoto FileKind = iota
	FileDocument
)

// FileRef is an opaque platform handle for an attached payload.
type FileRef struct {
	Kind     FileKind
	ID       string
	Name     string
	MimeType string
}

// InboundEvent is one user action delivered by the chat platform.
// Exactly one variant is active, selected by Kind; the variant-specific
// fields of the other kinds are zero.
type InboundEvent struct {
	Kind      EventKind
	ChatID    int64
	Username  string
	FirstName string

	Text  string  // EventTextMessage body or EventSearchCommand raw query
	Phone string  // EventContactShare
	File  FileRef // EventFileUpload
}
