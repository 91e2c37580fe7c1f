package store

// DraftState tracks an unsaved chat before its first user message
// lands. PendingUploadIds are documents uploaded while drafting; they
// become context-active links the moment the draft persists.
type DraftState struct {
	UserID           string   `json:"user_id"`
	PendingUploadIds []string `json:"pending_upload_ids"`
	Persisted        bool     `json:"persisted"`
}

// ContextState is the user's active-context folder selection.
// GeneralActive covers the unfiled group and stays true for the life
// of the session; the field is kept for the state payload shape.
type ContextState struct {
	UserID          string   `json:"user_id"`
	GeneralActive   bool     `json:"general_active"`
	ActiveFolderIds []string `json:"active_folder_ids"`
}

// Session is the per-user dashboard state held in memory: the open
// chat, the draft, and the context selection.
type Session struct {
	UserID     string        `json:"user_id"`
	OpenChatId string        `json:"open_chat_id"` // empty while drafting
	Draft      *DraftState   `json:"draft"`
	Context    *ContextState `json:"context"`
	LastQuery  string        `json:"last_query"`
}

// NewSession returns the default state for a user: no open chat, a
// fresh draft, and the unfiled group active.
func NewSession(userID string) *Session {
	return &Session{
		UserID: userID,
		Draft: &DraftState{
			UserID: userID,
		},
		Context: &ContextState{
			UserID:        userID,
			GeneralActive: true,
		},
	}
}
