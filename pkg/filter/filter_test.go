package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/dedup/pkg/filetype"
	"github.com/arthur-debert/dedup/pkg/filter"
)

func TestExtensionAllowList(t *testing.T) {
	f := filter.New(filter.Options{Categories: []filetype.Category{filetype.Text}})

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"allowed_txt", "/home/user/notes.txt", true},
		{"allowed_pdf_uppercase", "/home/user/REPORT.PDF", true},
		{"rejected_audio", "/home/user/song.mp3", false},
		{"rejected_no_extension", "/home/user/Makefile", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IncludePath(tt.path))
		})
	}
}

func TestNoCategoriesPassesAllExtensions(t *testing.T) {
	f := filter.New(filter.Options{})

	assert.True(t, f.IncludePath("/home/user/anything.xyz"))
	assert.True(t, f.IncludePath("/home/user/Makefile"))
}

func TestDirectoryExclusion(t *testing.T) {
	f := filter.Default()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"inside_git", "/repo/.git/objects/ab/cdef", false},
		{"git_is_deep_ancestor", "/repo/.git/hooks/samples/notes.txt", false},
		{"inside_node_modules", "/app/node_modules/pkg/index.js", false},
		{"egg_info_glob", "/src/mypkg.egg-info/PKG-INFO", false},
		{"regular_path", "/repo/src/main.txt", true},
		{"name_contains_git_but_no_match", "/repo/gitlab/readme.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IncludePath(tt.path))
		})
	}
}

func TestExclusionIsCaseSensitive(t *testing.T) {
	f := filter.Default()

	// Glob matching, not substring matching, and case-sensitive
	assert.True(t, f.IncludePath("/repo/.GIT/config.txt"))
	assert.False(t, f.IncludePath("/repo/.git/config.txt"))
}

func TestExplicitExcludeDirsReplaceDefaults(t *testing.T) {
	f := filter.New(filter.Options{
		ExcludeDirs:        []string{"secret*"},
		UseDefaultExcludes: true,
	})

	assert.False(t, f.IncludePath("/data/secrets/key.txt"))
	// Defaults no longer apply once an explicit list is given
	assert.True(t, f.IncludePath("/repo/.git/config.txt"))
}

func TestEmptyExcludeDirsDisablesExclusion(t *testing.T) {
	f := filter.New(filter.Options{
		ExcludeDirs:        []string{},
		UseDefaultExcludes: true,
	})

	assert.True(t, f.IncludePath("/repo/.git/config.txt"))
}

func TestFilterPaths(t *testing.T) {
	f := filter.New(filter.Options{
		Categories:         []filetype.Category{filetype.Audio},
		UseDefaultExcludes: true,
	})

	paths := []string{
		"/music/song.mp3",
		"/music/cover.jpg",
		"/music/node_modules/x.mp3",
		"/music/album/track.flac",
	}

	assert.Equal(t, []string{"/music/song.mp3", "/music/album/track.flac"}, f.FilterPaths(paths))
}

func TestAddExcludePattern(t *testing.T) {
	base := filter.New(filter.Options{})
	extended := base.AddExcludePattern("tmp*")

	assert.True(t, base.IncludePath("/data/tmpdir/file.txt"))
	assert.False(t, extended.IncludePath("/data/tmpdir/file.txt"))
}

func TestActive(t *testing.T) {
	assert.False(t, filter.New(filter.Options{}).Active())
	assert.True(t, filter.Default().Active())
	assert.True(t, filter.New(filter.Options{Categories: []filetype.Category{filetype.Text}}).Active())
}
