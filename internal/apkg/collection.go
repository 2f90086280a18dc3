package apkg

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	defaultDeckID   = 1
	defaultConfigID = 1
	modelCSS        = `.card {
 font-family: arial;
 font-size: 20px;
 text-align: center;
 color: black;
 background-color: white;
}
img { max-width: 100%; }
`
	latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n" +
		"\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"
	latexPost = "\\end{document}"
)

type modelField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
	RTL    bool     `json:"rtl"`
	Sticky bool     `json:"sticky"`
}

type modelTemplate struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	QFmt  string `json:"qfmt"`
	AFmt  string `json:"afmt"`
	BQFmt string `json:"bqfmt"`
	BAFmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

type modelJSON struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      int             `json:"type"`
	Mod       int64           `json:"mod"`
	Usn       int             `json:"usn"`
	Sortf     int             `json:"sortf"`
	Did       int64           `json:"did"`
	Tmpls     []modelTemplate `json:"tmpls"`
	Flds      []modelField    `json:"flds"`
	CSS       string          `json:"css"`
	LatexPre  string          `json:"latexPre"`
	LatexPost string          `json:"latexPost"`
	Tags      []string        `json:"tags"`
	Vers      []int           `json:"vers"`
	Req       [][]any         `json:"req"`
}

type deckJSON struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Desc             string `json:"desc"`
	Mod              int64  `json:"mod"`
	Usn              int    `json:"usn"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	Conf             int64  `json:"conf"`
	Dyn              int    `json:"dyn"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
}

func (m Model) toJSON(deckID, mod int64) modelJSON {
	fields := make([]modelField, len(m.Fields))
	for i, name := range m.Fields {
		fields[i] = modelField{Name: name, Ord: i, Font: "Arial", Size: 20, Media: []string{}}
	}
	return modelJSON{
		ID:    m.ID,
		Name:  m.Name,
		Mod:   mod,
		Usn:   -1,
		Did:   deckID,
		Flds:  fields,
		CSS:   modelCSS,
		Tags:  []string{},
		Vers:  []int{},
		Req:   [][]any{{0, "all", []int{0}}},
		Tmpls: []modelTemplate{{
			Name: m.TemplateName,
			QFmt: "{{" + m.Fields[0] + "}}",
			AFmt: `{{FrontSide}}<hr id="answer">{{` + m.Fields[1] + "}}",
		}},
		LatexPre:  latexPre,
		LatexPost: latexPost,
	}
}

func newDeckJSON(id int64, name string, mod int64) deckJSON {
	return deckJSON{
		ID:        id,
		Name:      name,
		Mod:       mod,
		Usn:       -1,
		Conf:      defaultConfigID,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}

// collectionRowFor builds the single col row describing the model and decks of a package.
func collectionRowFor(model Model, deckID int64, deckName string, now int64) (collectionRow, error) {
	models, err := json.Marshal(map[string]modelJSON{
		strconv.FormatInt(model.ID, 10): model.toJSON(deckID, now),
	})
	if err != nil {
		return collectionRow{}, fmt.Errorf("json.Marshal(models) > %w", err)
	}

	decks, err := json.Marshal(map[string]deckJSON{
		strconv.Itoa(defaultDeckID):  newDeckJSON(defaultDeckID, "Default", now),
		strconv.FormatInt(deckID, 10): newDeckJSON(deckID, deckName, now),
	})
	if err != nil {
		return collectionRow{}, fmt.Errorf("json.Marshal(decks) > %w", err)
	}

	conf, err := json.Marshal(map[string]any{
		"activeDecks":   []int64{defaultDeckID},
		"curDeck":       defaultDeckID,
		"newSpread":     0,
		"collapseTime":  1200,
		"timeLim":       0,
		"estTimes":      true,
		"dueCounts":     true,
		"curModel":      nil,
		"nextPos":       1,
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
	})
	if err != nil {
		return collectionRow{}, fmt.Errorf("json.Marshal(conf) > %w", err)
	}

	dconf, err := json.Marshal(map[string]any{
		strconv.Itoa(defaultConfigID): map[string]any{
			"id":       defaultConfigID,
			"name":     "Default",
			"mod":      0,
			"usn":      0,
			"maxTaken": 60,
			"autoplay": true,
			"timer":    0,
			"replayq":  true,
			"dyn":      false,
			"new": map[string]any{
				"bury":          true,
				"delays":        []float64{1, 10},
				"initialFactor": 2500,
				"ints":          []int{1, 4, 7},
				"order":         1,
				"perDay":        20,
				"separate":      true,
			},
			"lapse": map[string]any{
				"delays":      []float64{10},
				"leechAction": 0,
				"leechFails":  8,
				"minInt":      1,
				"mult":        0,
			},
			"rev": map[string]any{
				"bury":     true,
				"ease4":    1.3,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"minSpace": 1,
				"perDay":   100,
			},
		},
	})
	if err != nil {
		return collectionRow{}, fmt.Errorf("json.Marshal(dconf) > %w", err)
	}

	return collectionRow{
		ID:     1,
		Crt:    now - now%86400,
		Mod:    now * 1000,
		Scm:    now * 1000,
		Ver:    11,
		Usn:    0,
		Conf:   string(conf),
		Models: string(models),
		Decks:  string(decks),
		Dconf:  string(dconf),
		Tags:   "{}",
	}, nil
}
