package contextset

import (
	"testing"

	"github.com/google/uuid"
)

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}

func TestActiveSetToggle(t *testing.T) {
	folderA := uuid.New()

	s := NewActiveSet()
	if !s.Contains(General()) {
		t.Fatal("new set should contain the general group")
	}

	if on := s.Toggle(Folder(folderA)); !on {
		t.Error("first toggle should activate the folder")
	}
	if on := s.Toggle(Folder(folderA)); on {
		t.Error("second toggle should deactivate the folder")
	}
	if s.Contains(Folder(folderA)) {
		t.Error("folder should be gone after the second toggle")
	}

	// General cannot be toggled off.
	if on := s.Toggle(General()); !on {
		t.Error("toggling general should report it active")
	}
	if !s.Contains(General()) {
		t.Error("general must survive a toggle")
	}
}

func TestActiveSetGeneralAlwaysIn(t *testing.T) {
	folderA := uuid.New()

	s := NewActiveSet()
	s.Toggle(General())
	s.Toggle(General())
	s.Replace(Folder(folderA))
	s.Remove(General())
	if !s.Contains(General()) {
		t.Fatal("general must survive any toggle/replace/remove sequence")
	}

	docUnfiled := uuid.New()
	got := Resolve(s, []Doc{{Id: docUnfiled, FolderId: nil}}, nil)
	if len(got) != 1 || got[0] != docUnfiled {
		t.Errorf("unfiled document should always resolve, got %v", got)
	}
}

func TestActiveSetReplace(t *testing.T) {
	folderA := uuid.New()
	folderB := uuid.New()

	s := NewActiveSet()
	s.Toggle(Folder(folderA))

	s.Replace(Folder(folderB))
	if s.Contains(Folder(folderA)) {
		t.Error("replace should drop prior custom members")
	}
	if !s.Contains(Folder(folderB)) {
		t.Error("replace should install the new selection")
	}
	if !s.Contains(General()) {
		t.Error("replace must keep the general group")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestActiveSetRemove(t *testing.T) {
	folderA := uuid.New()
	s := NewActiveSet()
	s.Toggle(Folder(folderA))

	s.Remove(Folder(folderA))
	if s.Contains(Folder(folderA)) {
		t.Error("removed folder should not remain active")
	}
	s.Remove(Folder(folderA)) // removing twice is fine
}

func TestResolve(t *testing.T) {
	folderA := uuid.New()
	folderB := uuid.New()

	docGeneral := uuid.New()
	docInA := uuid.New()
	docInB := uuid.New()
	docLinked := uuid.New()

	docs := []Doc{
		{Id: docGeneral, FolderId: nil},
		{Id: docInA, FolderId: ptr(folderA)},
		{Id: docInB, FolderId: ptr(folderB)},
	}

	tests := []struct {
		name string
		set  func() *ActiveSet
		src  Source
		want []uuid.UUID
	}{
		{
			name: "general only picks unfiled docs",
			set:  NewActiveSet,
			src:  nil,
			want: []uuid.UUID{docGeneral},
		},
		{
			name: "folder selection adds its docs",
			set: func() *ActiveSet {
				s := NewActiveSet()
				s.Toggle(Folder(folderA))
				return s
			},
			src:  nil,
			want: []uuid.UUID{docGeneral, docInA},
		},
		{
			name: "nil set yields only source docs",
			set:  func() *ActiveSet { return nil },
			src:  DraftUploads([]uuid.UUID{docLinked}),
			want: []uuid.UUID{docLinked},
		},
		{
			name: "chat links respect the context flag",
			set:  func() *ActiveSet { return nil },
			src: ChatLinks([]Link{
				{DocumentId: docLinked, IsContextActive: true},
				{DocumentId: docInB, IsContextActive: false},
			}),
			want: []uuid.UUID{docLinked},
		},
		{
			name: "union dedupes keeping first occurrence",
			set: func() *ActiveSet {
				s := NewActiveSet()
				s.Toggle(Folder(folderA))
				return s
			},
			src: ChatLinks([]Link{
				{DocumentId: docInA, IsContextActive: true},
				{DocumentId: docLinked, IsContextActive: true},
			}),
			want: []uuid.UUID{docGeneral, docInA, docLinked},
		},
		{
			name: "folder docs win ordering over source docs",
			set: func() *ActiveSet {
				s := NewActiveSet()
				s.Toggle(Folder(folderB))
				return s
			},
			src:  DraftUploads([]uuid.UUID{docInA, docInB}),
			want: []uuid.UUID{docGeneral, docInB, docInA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.set(), docs, tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("Resolve() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Resolve()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	folderA := uuid.New()
	docInA := uuid.New()

	docs := []Doc{{Id: docInA, FolderId: ptr(folderA)}}
	s := NewActiveSet()
	s.Toggle(Folder(folderA))
	src := DraftUploads([]uuid.UUID{docInA})

	first := Resolve(s, docs, src)
	second := Resolve(s, docs, src)

	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Fatalf("repeated Resolve diverged: %v vs %v", first, second)
	}
}
