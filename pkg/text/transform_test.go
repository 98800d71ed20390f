package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/renamerc/pkg/rules"
)

func mustRules(t *testing.T, pairs ...string) rules.RuleSet {
	t.Helper()
	require.True(t, len(pairs)%2 == 0, "pairs must be even")
	rs := rules.RuleSet{}
	for i := 0; i < len(pairs); i += 2 {
		r, err := rules.New(pairs[i], pairs[i+1])
		require.NoError(t, err)
		rs = append(rs, r)
	}
	return rs
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name string
		want Parts
	}{
		{"movie.mkv", Parts{Base: "movie", Ext: ".mkv"}},
		{"My.Movie.2020.mkv", Parts{Base: "My.Movie.2020", Ext: ".mkv"}},
		{"README", Parts{Base: "README"}},
		{".hidden", Parts{Base: "", Ext: ".hidden"}},
		{"trailing.", Parts{Base: "trailing", Ext: "."}},
		{"", Parts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitName(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.Base+got.Ext, "parts should rebuild the name")
			assert.LessOrEqual(t, strings.Count(got.Ext, "."), 1, "extension holds at most one period")
		})
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules []string
		want  string
	}{
		{
			name:  "separators_become_spaces",
			input: "my-home_video.mp4",
			want:  "my home video.mp4",
		},
		{
			name:  "internal_periods_become_spaces",
			input: "My.Movie.2020.mkv",
			want:  "My Movie 2020.mkv",
		},
		{
			name:  "no_extension",
			input: "some_file-name",
			want:  "some file name",
		},
		{
			name:  "extension_untouched",
			input: "a_b.T_A-R",
			want:  "a b.T_A-R",
		},
		{
			name:  "collapse_and_trim",
			input: "__a--b  c..d_.avi",
			want:  "a b c d.avi",
		},
		{
			name:  "empty_base_falls_back",
			input: "---.mkv",
			want:  "file.mkv",
		},
		{
			name:  "rules_remove_everything",
			input: "WEBRip.mkv",
			rules: []string{"webrip", ""},
			want:  "file.mkv",
		},
		{
			name:  "case_insensitive_rule",
			input: "Show.WEBRIP.webrip.WebRip.mkv",
			rules: []string{"webrip", ""},
			want:  "Show.mkv",
		},
		{
			name:  "sequential_composition",
			input: "a.txt",
			rules: []string{"a", "b", "b", "c"},
			want:  "c.txt",
		},
		{
			name:  "rules_see_base_after_separator_handling",
			input: "Show_Name.x264-GROUP.mkv",
			rules: []string{"x264 GROUP", ""},
			want:  "Show Name.mkv",
		},
		{
			name:  "rules_do_not_touch_extension",
			input: "clip.mkv.mkv",
			rules: []string{"mkv", ""},
			want:  "clip.mkv",
		},
		{
			name:  "end_to_end_worked_example",
			input: "My.Movie-2020_WEBRip.mkv",
			rules: []string{"webrip", "", "2020", ""},
			want:  "My Movie.mkv",
		},
		{
			name:  "already_clean",
			input: "My Movie.mkv",
			rules: []string{"webrip", ""},
			want:  "My Movie.mkv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(tt.input, mustRules(t, tt.rules...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransform_EmptyRulesOnlyChangesBase(t *testing.T) {
	inputs := []string{
		"a-b_c.d.e.f",
		"x_y-z.TAR",
		"no.dots-here_.",
		"plain",
		"Dr. Who - S01E01 - Rose.mkv",
	}

	for _, in := range inputs {
		got := Transform(in, nil)
		inParts, gotParts := SplitName(in), SplitName(got)
		assert.Equal(t, inParts.Ext, gotParts.Ext, "extension of %q should be preserved", in)
		assert.NotContains(t, gotParts.Base, "-", "base of %q should lose dashes", in)
		assert.NotContains(t, gotParts.Base, "_", "base of %q should lose underscores", in)
		assert.NotContains(t, gotParts.Base, ".", "base of %q should lose periods", in)
	}
}

func TestTransform_Idempotent(t *testing.T) {
	rs := mustRules(t, "webrip", "", "x264", "", "1080p", "")
	inputs := []string{
		"My.Movie-2020_WEBRip.mkv",
		"Show_S01E02_1080p_x264.mp4",
		"__..--.avi",
		"  spaced   out  .srt",
		"README",
	}

	for _, in := range inputs {
		once := Transform(in, rs)
		twice := Transform(once, rs)
		assert.Equal(t, once, twice, "transform of %q should be stable", in)
	}
}

func TestTrace(t *testing.T) {
	rs := mustRules(t, "webrip", "", "2020", "")
	res := Trace("My.Movie-2020_WEBRip.mkv", rs)

	require.NotNil(t, res)
	assert.True(t, res.Changed())
	assert.Equal(t, "My Movie.mkv", res.Name)
	assert.Equal(t, Parts{Base: "My.Movie-2020_WEBRip", Ext: ".mkv"}, res.Parts)
	assert.Equal(t, 2, res.ReplacementCount)

	stages := make([]Stage, 0, len(res.Steps))
	for _, s := range res.Steps {
		stages = append(stages, s.Stage)
	}
	assert.Equal(t, []Stage{StageSplit, StageSeparators, StagePeriods, StageRule, StageRule, StageCollapse}, stages)

	assert.Equal(t, "My.Movie 2020 WEBRip", res.Steps[1].Base)
	assert.Equal(t, "My Movie 2020 WEBRip", res.Steps[2].Base)
	require.NotNil(t, res.Steps[3].Rule)
	assert.Equal(t, "webrip", res.Steps[3].Rule.Search)
	assert.Equal(t, 1, res.Steps[3].Count)
}

func TestTrace_Unchanged(t *testing.T) {
	res := Trace("Clean Name.mkv", nil)
	assert.False(t, res.Changed())
	assert.Len(t, res.Steps, 1, "only the split step should be recorded")
}
