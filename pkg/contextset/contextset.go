// Package contextset implements the active-context selection and the
// context resolution used to scope retrieval for a chat request.
//
// The active set is a selection of document folders. The unfiled group
// is a first-class member ("general"), not a sentinel id. Resolution
// unions the documents of the active folders with the documents pinned
// to the chat itself, preserving first-seen order.
package contextset

import "github.com/google/uuid"

// Key identifies one member of the active set: either the general
// (unfiled) group or a concrete folder.
type Key struct {
	general  bool
	folderId uuid.UUID
}

// General is the key of the unfiled group.
func General() Key {
	return Key{general: true}
}

// Folder is the key of a concrete document folder.
func Folder(id uuid.UUID) Key {
	return Key{folderId: id}
}

// IsGeneral reports whether the key names the unfiled group.
func (k Key) IsGeneral() bool {
	return k.general
}

// FolderId returns the folder id and false for the general key.
func (k Key) FolderId() (uuid.UUID, bool) {
	if k.general {
		return uuid.Nil, false
	}
	return k.folderId, true
}

// ActiveSet is the set of folder groups currently in scope. The
// general group is always a member; no operation can take it out.
type ActiveSet struct {
	members map[Key]struct{}
}

func NewActiveSet() *ActiveSet {
	s := &ActiveSet{members: map[Key]struct{}{}}
	s.members[General()] = struct{}{}
	return s
}

func (s *ActiveSet) Contains(k Key) bool {
	_, ok := s.members[k]
	return ok
}

// Toggle flips membership of the key and reports the new state. The
// general group cannot be toggled off: toggling it is a no-op that
// reports it active.
func (s *ActiveSet) Toggle(k Key) bool {
	if k.IsGeneral() {
		s.members[General()] = struct{}{}
		return true
	}
	if s.Contains(k) {
		delete(s.members, k)
		return false
	}
	s.members[k] = struct{}{}
	return true
}

// Replace swaps the custom members of the selection. The general group
// always stays.
func (s *ActiveSet) Replace(keys ...Key) {
	s.members = make(map[Key]struct{}, len(keys)+1)
	s.members[General()] = struct{}{}
	for _, k := range keys {
		s.members[k] = struct{}{}
	}
}

// Remove drops the key if present. Used when a folder is deleted so a
// stale selection cannot linger. The general group cannot be removed.
func (s *ActiveSet) Remove(k Key) {
	if k.IsGeneral() {
		return
	}
	delete(s.members, k)
}

func (s *ActiveSet) Len() int {
	return len(s.members)
}

// Doc is the projection of a document that resolution needs.
type Doc struct {
	Id       uuid.UUID
	FolderId *uuid.UUID // nil means unfiled
}

// effectiveKey maps a document to the group it belongs to.
func effectiveKey(d Doc) Key {
	if d.FolderId == nil {
		return General()
	}
	return Folder(*d.FolderId)
}

// Source supplies the chat-scoped half of the context: either the
// pending uploads of a draft, or the context-active links of a
// persisted chat.
type Source interface {
	DocumentIds() []uuid.UUID
}

type draftUploads struct {
	ids []uuid.UUID
}

func (s draftUploads) DocumentIds() []uuid.UUID {
	return s.ids
}

// DraftUploads is the Source for an unsaved chat: every pending upload
// counts.
func DraftUploads(ids []uuid.UUID) Source {
	return draftUploads{ids: ids}
}

// Link is a chat-document association with its context flag.
type Link struct {
	DocumentId      uuid.UUID
	IsContextActive bool
}

type chatLinks struct {
	links []Link
}

func (s chatLinks) DocumentIds() []uuid.UUID {
	var ids []uuid.UUID
	for _, l := range s.links {
		if l.IsContextActive {
			ids = append(ids, l.DocumentId)
		}
	}
	return ids
}

// ChatLinks is the Source for a persisted chat: only links whose
// context flag is on count.
func ChatLinks(links []Link) Source {
	return chatLinks{links: links}
}

// Resolve computes the document ids in scope for a request: documents
// whose group is in the active set, then the source's documents,
// deduplicated keeping the first occurrence. Resolve never mutates its
// inputs and is safe to call repeatedly with the same snapshot.
func Resolve(set *ActiveSet, docs []Doc, src Source) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID

	add := func(id uuid.UUID) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	if set != nil {
		for _, d := range docs {
			if set.Contains(effectiveKey(d)) {
				add(d.Id)
			}
		}
	}
	if src != nil {
		for _, id := range src.DocumentIds() {
			add(id)
		}
	}
	return out
}
