package constant

const (
	RoleUser = "user"
	RoleBot  = "bot"

	// Session list presentation limits.
	TitleMaxLen   = 50
	PreviewMaxLen = 60

	// Returned verbatim when the model call fails mid-request.
	FallbackAnswer = "Sorry, I couldn't process your request. Please try again."

	// Default pub/sub topic for the document embedding pipeline,
	// overridable via EMBED_DOCUMENT_TOPIC_NAME.
	EmbedDocumentTopic = "EMBED_DOCUMENT_CONTENT"
)

// FolderPalette is cycled by creation order when a folder is created
// without an explicit color.
var FolderPalette = []string{
	"bg-blue-500",
	"bg-green-500",
	"bg-purple-500",
	"bg-orange-500",
	"bg-pink-500",
	"bg-indigo-500",
}
