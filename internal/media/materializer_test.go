package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestMaterializer_Resolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cinetique", "photo1.jpg"), "cinetique")
	writeFile(t, filepath.Join(root, "torseur", "moved.png"), "torseur")
	writeFile(t, filepath.Join(root, "a", "b", "c", "deep.png"), "deep")

	tests := []struct {
		name        string
		searchDepth int
		filename    string
		identity    string
		want        string
		wantFound   bool
	}{
		{
			name:        "identity folder",
			searchDepth: 8,
			filename:    "photo1.jpg",
			identity:    "cinetique",
			want:        filepath.Join(root, "cinetique", "photo1.jpg"),
			wantFound:   true,
		},
		{
			name:        "fallback search finds a misplaced file",
			searchDepth: 8,
			filename:    "moved.png",
			identity:    "cinetique",
			want:        filepath.Join(root, "torseur", "moved.png"),
			wantFound:   true,
		},
		{
			name:        "fallback search is bounded",
			searchDepth: 2,
			filename:    "deep.png",
			identity:    "cinetique",
			wantFound:   false,
		},
		{
			name:        "fallback search within bound",
			searchDepth: 3,
			filename:    "deep.png",
			identity:    "cinetique",
			want:        filepath.Join(root, "a", "b", "c", "deep.png"),
			wantFound:   true,
		},
		{
			name:        "missing everywhere",
			searchDepth: 8,
			filename:    "ghost.png",
			identity:    "cinetique",
			wantFound:   false,
		},
		{
			name:        "path traversal is refused",
			searchDepth: 8,
			filename:    "../cinetique/photo1.jpg",
			identity:    "torseur",
			wantFound:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterializer(root, tt.searchDepth)
			got, found := m.Resolve(tt.filename, tt.identity)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaterializer_Resolve_MissingRoot(t *testing.T) {
	m := NewMaterializer(filepath.Join(t.TempDir(), "missing"), 8)
	_, found := m.Resolve("photo1.jpg", "cinetique")
	assert.False(t, found)
}

func TestMaterializer_ResolveReference_UsesReferenceFolder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "torseur", "shared.png"), "torseur")
	writeFile(t, filepath.Join(root, "cycle5_torseur", "shared.png"), "identity")

	m := NewMaterializer(root, 8)
	refs := Collect(`<img src="../media/torseur/shared.png">`)
	require.Len(t, refs, 1)

	got, found := m.ResolveReference(refs[0], "cycle5_torseur")
	require.True(t, found)
	assert.Equal(t, filepath.Join(root, "torseur", "shared.png"), got)
}

func TestMaterializer_ResolveAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "optique", "lens.png"), "lens")

	m := NewMaterializer(root, 8)
	refs := Collect(`<img src="lens.png"><img src="ghost.png"><img src="../media/optique/lens.png">`)

	got := m.ResolveAll(refs, "optique")
	assert.Equal(t, []string{filepath.Join(root, "optique", "lens.png")}, got.Paths)
	assert.Equal(t, []string{"ghost.png"}, got.Missing)
}

func TestMaterializer_ResolveAll_RepeatedAcrossCards(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "optique", "lens.png"), "lens")

	m := NewMaterializer(root, 8)
	var refs []Reference
	for _, card := range []string{
		`<img src="../media/optique/ghost.png"> <img src="../media/optique/lens.png">`,
		`<img src="../media/optique/ghost.png">`,
		`<img src="lens.png">`,
	} {
		refs = append(refs, CollectFields(card)...)
	}

	got := m.ResolveAll(refs, "optique")
	assert.Equal(t, []string{"ghost.png"}, got.Missing, "a file referenced by several cards is missing once")
	assert.Equal(t, []string{filepath.Join(root, "optique", "lens.png")}, got.Paths)
}

func TestLocateFlat(t *testing.T) {
	store := t.TempDir()
	writeFile(t, filepath.Join(store, "photo1.jpg"), "photo")

	got := LocateFlat(store, Collect(`<img src="photo1.jpg"><img src="ghost.png">`))
	assert.Equal(t, []string{filepath.Join(store, "photo1.jpg")}, got.Paths)
	assert.Equal(t, []string{"ghost.png"}, got.Missing)

	refs := append(Collect(`<img src="ghost.png">`), Collect(`<img src="ghost.png"><img src="photo1.jpg">`)...)
	got = LocateFlat(store, refs)
	assert.Equal(t, []string{"ghost.png"}, got.Missing)
	assert.Equal(t, []string{filepath.Join(store, "photo1.jpg")}, got.Paths)
}

func TestMaterialize(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(src, "x", "a.png"), "new a")
	writeFile(t, filepath.Join(src, "y", "a.png"), "other a")
	writeFile(t, filepath.Join(src, "x", "b.png"), "new b")
	writeFile(t, filepath.Join(dst, "b.png"), "existing b")

	copied, err := Materialize([]string{
		filepath.Join(src, "x", "a.png"),
		filepath.Join(src, "y", "a.png"),
		filepath.Join(src, "x", "b.png"),
	}, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	content, err := os.ReadFile(filepath.Join(dst, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "new a", string(content))

	content, err = os.ReadFile(filepath.Join(dst, "b.png"))
	require.NoError(t, err)
	assert.Equal(t, "existing b", string(content), "existing destination files are never overwritten")

	copied, err = Materialize([]string{filepath.Join(src, "x", "a.png")}, dst)
	require.NoError(t, err)
	assert.Equal(t, 0, copied, "a second run copies nothing")
}

func TestMaterialize_MissingSourceIsReported(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "ok.png"), "ok")

	copied, err := Materialize([]string{filepath.Join(src, "gone.png"), filepath.Join(src, "ok.png")}, dst)
	assert.Error(t, err)
	assert.Equal(t, 1, copied)
	_, statErr := os.Stat(filepath.Join(dst, "gone.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMaterialize_Empty(t *testing.T) {
	copied, err := Materialize(nil, filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, err)
	assert.Equal(t, 0, copied)
}
