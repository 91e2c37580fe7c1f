package dto

import "github.com/google/uuid"

// ToggleContextRequest flips one member of the active-context set.
// General=true targets the unfiled group, which stays active no matter
// what; otherwise FolderId is required.
type ToggleContextRequest struct {
	General  bool       `json:"general"`
	FolderId *uuid.UUID `json:"folder_id"`
}

type ToggleContextResponse struct {
	Active bool `json:"active"`
}

// ReplaceContextRequest swaps the custom members of the selection at
// once. The unfiled group is always kept, so it takes no flag.
type ReplaceContextRequest struct {
	FolderIds []uuid.UUID `json:"folder_ids"`
}

type ContextStateResponse struct {
	General   bool        `json:"general"`
	FolderIds []uuid.UUID `json:"folder_ids"`
}

// ResolvedContextResponse is the materialized document scope for the
// open chat or draft.
type ResolvedContextResponse struct {
	DocumentIds []uuid.UUID `json:"document_ids"`
}
