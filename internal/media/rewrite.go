// Package media finds, rewrites and copies the images embedded in flashcard fields.
//
// References are located by scanning src attributes only. Card fields hold minimal markup
// (img tags with a src attribute), so the rewriters are plain string transforms rather than an HTML parser.
package media

import (
	"path"
	"regexp"
	"strings"
)

var (
	srcAttribute   = regexp.MustCompile(`(?i:src)=(?:"([^"]*)"|'([^']*)')`)
	mediaExtension = regexp.MustCompile(`(?i)\.(?:jpe?g|png|gif|svg)$`)
)

const (
	// RepoMediaPrefix is how deck files reach the media tree from their subject folder.
	RepoMediaPrefix = "../media"
	// PreviewMediaPrefix is where previews find the flattened media copied next to them.
	PreviewMediaPrefix = "media"
)

// Reference is one media src attribute found in a field.
type Reference struct {
	// Raw is the attribute as written, quotes included.
	Raw string
	// Value is the attribute value.
	Value string
	// Filename is the last path segment of Value.
	Filename string
	// Folder is the parent segment of Value, empty for flat references.
	Folder string

	quote      byte
	start, end int
	valueStart int
}

// IsFlat reports whether the reference addresses a file in a flat namespace.
func (r Reference) IsFlat() bool {
	return !strings.Contains(r.Value, "/")
}

func isRemote(value string) bool {
	lowered := strings.ToLower(value)
	return strings.Contains(lowered, "://") || strings.HasPrefix(lowered, "//") || strings.HasPrefix(lowered, "data:")
}

// scan returns the media references of text in order of appearance.
func scan(text string) []Reference {
	matches := srcAttribute.FindAllStringSubmatchIndex(text, -1)
	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		start, end := m[0], m[1]
		// data-src and similar attributes end with "src" too
		if start > 0 {
			prev := text[start-1]
			if prev == '-' || prev == '_' || prev == ':' || isWordByte(prev) {
				continue
			}
		}

		valueStart, valueEnd, quote := m[2], m[3], byte('"')
		if valueStart < 0 {
			valueStart, valueEnd, quote = m[4], m[5], '\''
		}
		value := text[valueStart:valueEnd]
		if isRemote(value) || !mediaExtension.MatchString(value) {
			continue
		}

		filename := path.Base(value)
		if filename == "." || filename == ".." || filename == "/" {
			continue
		}
		folder := ""
		if dir := path.Dir(value); dir != "." && dir != "/" {
			folder = path.Base(dir)
		}
		refs = append(refs, Reference{
			Raw:        text[start:end],
			Value:      value,
			Filename:   filename,
			Folder:     folder,
			quote:      quote,
			start:      start,
			end:        end,
			valueStart: valueStart,
		})
	}
	return refs
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// rewrite replaces the value of every media reference for which replace returns true.
// Everything outside the rewritten values is copied byte for byte.
func rewrite(text string, replace func(ref Reference) (string, bool)) string {
	refs := scan(text)
	if len(refs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, ref := range refs {
		value, ok := replace(ref)
		if !ok {
			continue
		}
		b.WriteString(text[last:ref.valueStart])
		b.WriteString(value)
		b.WriteByte(ref.quote)
		last = ref.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// Collect returns the media references of text, one per distinct filename, in order of appearance.
func Collect(text string) []Reference {
	refs := scan(text)
	seen := make(map[string]struct{}, len(refs))
	result := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.Filename]; ok {
			continue
		}
		seen[ref.Filename] = struct{}{}
		result = append(result, ref)
	}
	return result
}

// CollectFields merges the references of several fields, keeping the first occurrence of each filename.
func CollectFields(fields ...string) []Reference {
	return Collect(strings.Join(fields, "\n"))
}

// Distinct drops the references that repeat the folder and filename of an earlier one, keeping order.
func Distinct(refs []Reference) []Reference {
	type key struct{ folder, filename string }
	seen := make(map[key]struct{}, len(refs))
	result := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		k := key{ref.Folder, ref.Filename}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, ref)
	}
	return result
}

// ToRepo rewrites flat private-store references to "../media/{identity}/{filename}".
// References that already carry a path are left untouched, so the rewrite is idempotent.
func ToRepo(text, identity string) string {
	return rewrite(text, func(ref Reference) (string, bool) {
		if !ref.IsFlat() {
			return "", false
		}
		return path.Join(RepoMediaPrefix, identity, ref.Value), true
	})
}

// ToPackage drops every path component of media references, leaving the bare filename
// the package format expects.
func ToPackage(text string) string {
	return rewrite(text, func(ref Reference) (string, bool) {
		if ref.IsFlat() {
			return "", false
		}
		return ref.Filename, true
	})
}

// ToPreview roots flat references under "media/" for pages rendered next to the flattened media copy.
func ToPreview(text string) string {
	return rewrite(text, func(ref Reference) (string, bool) {
		if !ref.IsFlat() {
			return "", false
		}
		return PreviewMediaPrefix + "/" + ref.Value, true
	})
}
