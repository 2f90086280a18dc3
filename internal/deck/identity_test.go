package deck

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    string
	}{
		{name: "accents are stripped", segment: "Thermodynamique Équilibre", want: "thermodynamique_equilibre"},
		{name: "punctuation is dropped", segment: "L'énergie (cours)!", want: "lenergie_cours"},
		{name: "dash and space runs collapse", segment: "Cycle 5 -  Torseur", want: "cycle_5_torseur"},
		{name: "surrounding whitespace is trimmed", segment: "  Torseur  ", want: "torseur"},
		{name: "underscores are kept", segment: "mecanique_du_point", want: "mecanique_du_point"},
		{name: "non latin characters disappear", segment: "Vocabulaire 日本", want: "vocabulaire"},
		{name: "ligatures decompose", segment: "ﬁlm", want: "film"},
		{name: "empty input", segment: "", want: ""},
		{name: "only punctuation", segment: "?!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.segment))
		})
	}
}

func TestSlug_Properties(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9_]*$`)
	inputs := []string{
		"SI", "Cycle5", "Électrocinétique - Régime sinusoïdal", "a - - b", "\tTab\tSeparated\t",
		"Déjà-vu", "ÇA", "x__y", "  ", "100% Maths", "über—dash", "L'œuvre",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Slug(input)
			assert.Equal(t, once, Slug(once), "slug must be idempotent")
			assert.Regexp(t, shape, once)
			assert.NotContains(t, once, " ")
			assert.NotContains(t, once, "-")
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name        string
		deckName    string
		separator   string
		want        Path
		wantSubject string
		wantTitle   string
	}{
		{
			name:        "nested deck",
			deckName:    "SI::Cycle5::Torseur",
			want:        Path{"SI", "Cycle5", "Torseur"},
			wantSubject: "si",
			wantTitle:   "Cycle5 Torseur",
		},
		{
			name:        "single segment deck",
			deckName:    "Vocabulaire",
			want:        Path{"Vocabulaire"},
			wantSubject: "divers",
			wantTitle:   "Vocabulaire",
		},
		{
			name:        "subject with accents",
			deckName:    "Français::Méthode",
			want:        Path{"Français", "Méthode"},
			wantSubject: "francais",
			wantTitle:   "Méthode",
		},
		{
			name:        "custom separator",
			deckName:    "Maths/Algebre",
			separator:   "/",
			want:        Path{"Maths", "Algebre"},
			wantSubject: "maths",
			wantTitle:   "Algebre",
		},
		{
			name:        "empty name still yields one segment",
			deckName:    "",
			want:        Path{""},
			wantSubject: "divers",
			wantTitle:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPath(tt.deckName, tt.separator)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, len(got), 1)

			subject, title := SubjectAndTitle(got)
			assert.Equal(t, tt.wantSubject, subject)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestPath_StemAndMediaIdentity(t *testing.T) {
	tests := []struct {
		name         string
		path         Path
		wantStem     string
		wantIdentity string
		wantString   string
	}{
		{
			name:         "nested deck",
			path:         Path{"SI", "Cycle5", "Torseur"},
			wantStem:     "cycle5_torseur",
			wantIdentity: "torseur",
			wantString:   "SI::Cycle5::Torseur",
		},
		{
			name:         "single segment deck",
			path:         Path{"Vocabulaire Anglais"},
			wantStem:     "vocabulaire_anglais",
			wantIdentity: "vocabulaire_anglais",
			wantString:   "Vocabulaire Anglais",
		},
		{
			name:         "accented title",
			path:         Path{"Physique", "Cinétique"},
			wantStem:     "cinetique",
			wantIdentity: "cinetique",
			wantString:   "Physique::Cinétique",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStem, tt.path.Stem())
			assert.Equal(t, tt.wantIdentity, tt.path.MediaIdentity())
			assert.Equal(t, tt.wantString, tt.path.String())
		})
	}
}

func TestFilenameFor(t *testing.T) {
	assert.Equal(t, "si-Cycle5_Torseur", FilenameFor("si", "Cycle5 Torseur"))
	assert.Equal(t, "maths-derivees", FilenameFor("maths", "derivees"))
}

func TestPathFromFilename(t *testing.T) {
	tests := []struct {
		name        string
		stem        string
		subjectHint string
		want        Path
	}{
		{name: "dash prefix is stripped", stem: "Maths-Algebre", subjectHint: "maths", want: Path{"maths", "Algebre"}},
		{name: "underscore prefix is stripped", stem: "maths_algebre_lineaire", subjectHint: "Maths", want: Path{"Maths", "algebre lineaire"}},
		{name: "missing prefix keeps the whole stem", stem: "Algebre", subjectHint: "maths", want: Path{"maths", "Algebre"}},
		{name: "prefix alone is not stripped", stem: "maths-", subjectHint: "maths", want: Path{"maths", "maths-"}},
		{name: "underscores become spaces", stem: "cycle5_torseur", subjectHint: "si", want: Path{"si", "cycle5 torseur"}},
		{name: "root file with subject dash", stem: "Maths-Algebre", subjectHint: "", want: Path{"Maths", "Algebre"}},
		{name: "root file without dash", stem: "vocabulaire_anglais", subjectHint: "", want: Path{"vocabulaire anglais"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathFromFilename(tt.stem, tt.subjectHint))
		})
	}
}

func TestPathFromFilename_MediaIdentityAcrossSubjects(t *testing.T) {
	t.Run("same title under two subjects shares the media folder", func(t *testing.T) {
		maths := PathFromFilename("Maths-Derivees", "maths")
		physique := PathFromFilename("Physique-Derivees", "physique")

		assert.NotEqual(t, maths.Subject(), physique.Subject())
		assert.Equal(t, "derivees", maths.MediaIdentity())
		assert.Equal(t, maths.MediaIdentity(), physique.MediaIdentity())
	})

	t.Run("different titles get distinct media folders", func(t *testing.T) {
		maths := PathFromFilename("Maths-Derivees", "maths")
		physique := PathFromFilename("Physique-Derivees_partielles", "physique")

		assert.Equal(t, "derivees", maths.MediaIdentity())
		assert.Equal(t, "derivees_partielles", physique.MediaIdentity())
	})
}
