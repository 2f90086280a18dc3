package ankiconnect

import (
	"sort"
)

// Request is one action of the remote-control protocol. The set of requests is closed: every action the
// tool sends is one of the types below.
type Request interface {
	Action() string
	params() any
}

type VersionRequest struct{}

func (VersionRequest) Action() string { return "version" }
func (VersionRequest) params() any    { return nil }

type DeckNamesRequest struct{}

func (DeckNamesRequest) Action() string { return "deckNames" }
func (DeckNamesRequest) params() any    { return nil }

type FindNotesRequest struct {
	Query string `json:"query"`
}

func (FindNotesRequest) Action() string { return "findNotes" }
func (r FindNotesRequest) params() any  { return r }

type NotesInfoRequest struct {
	Notes []int64 `json:"notes"`
}

func (NotesInfoRequest) Action() string { return "notesInfo" }
func (r NotesInfoRequest) params() any  { return r }

type ModelNamesRequest struct{}

func (ModelNamesRequest) Action() string { return "modelNames" }
func (ModelNamesRequest) params() any    { return nil }

type ModelFieldNamesRequest struct {
	ModelName string `json:"modelName"`
}

func (ModelFieldNamesRequest) Action() string { return "modelFieldNames" }
func (r ModelFieldNamesRequest) params() any  { return r }

type CreateDeckRequest struct {
	Deck string `json:"deck"`
}

func (CreateDeckRequest) Action() string { return "createDeck" }
func (r CreateDeckRequest) params() any  { return r }

type AddNotesRequest struct {
	Notes []NewNote `json:"notes"`
}

func (AddNotesRequest) Action() string { return "addNotes" }
func (r AddNotesRequest) params() any  { return r }

// StoreMediaFileRequest carries the file content base64 encoded.
type StoreMediaFileRequest struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

func (StoreMediaFileRequest) Action() string { return "storeMediaFile" }
func (r StoreMediaFileRequest) params() any  { return r }

type MediaDirPathRequest struct{}

func (MediaDirPathRequest) Action() string { return "getMediaDirPath" }
func (MediaDirPathRequest) params() any    { return nil }

var (
	_ Request = VersionRequest{}
	_ Request = DeckNamesRequest{}
	_ Request = FindNotesRequest{}
	_ Request = NotesInfoRequest{}
	_ Request = ModelNamesRequest{}
	_ Request = ModelFieldNamesRequest{}
	_ Request = CreateDeckRequest{}
	_ Request = AddNotesRequest{}
	_ Request = StoreMediaFileRequest{}
	_ Request = MediaDirPathRequest{}
)

// DuplicateScope is where the application looks for an existing note with the same first field.
type DuplicateScope string

const (
	DuplicateScopeDeck       DuplicateScope = "deck"
	DuplicateScopeCollection DuplicateScope = "collection"
)

type NoteOptions struct {
	AllowDuplicate bool           `json:"allowDuplicate"`
	DuplicateScope DuplicateScope `json:"duplicateScope,omitempty"`
}

// NewNote is a note to add.
type NewNote struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
	Options   *NoteOptions      `json:"options,omitempty"`
}

// NoteInfo is a stored note as returned by notesInfo.
type NoteInfo struct {
	NoteID    int64                 `json:"noteId"`
	ModelName string                `json:"modelName"`
	Tags      []string              `json:"tags"`
	Fields    map[string]FieldValue `json:"fields"`
}

type FieldValue struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// Field is a named field value.
type Field struct {
	Name  string
	Value string
}

// OrderedFields returns the fields in the order the note model declares them.
func (n NoteInfo) OrderedFields() []Field {
	fields := make([]Field, 0, len(n.Fields))
	for name, value := range n.Fields {
		fields = append(fields, Field{Name: name, Value: value.Value})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		oi, oj := n.Fields[fields[i].Name].Order, n.Fields[fields[j].Name].Order
		if oi != oj {
			return oi < oj
		}
		return fields[i].Name < fields[j].Name
	})
	return fields
}
