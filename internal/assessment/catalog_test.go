package assessment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Resolve(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		topic  string
		wantID string
	}{
		{"情商 (EQ) 评估", "eq"},
		{"EQ", "eq"},
		{"综合压力水平", "stress"},
		{"压力评估", "stress"},
		{"职业性格倾向 (MBTI-Lite)", "mbti"},
		{"性格", "mbti"},
		{"大五人格特质", "default"},
		{"", "default"},
		{"eq lowercase", "default"},
		// First match in catalog order wins.
		{"情商与压力", "eq"},
		{"压力下的性格", "stress"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			p := c.Resolve(tt.topic)
			assert.Equal(t, tt.wantID, p.ID)
			assert.Len(t, p.Dimensions, 5)
		})
	}
}

func TestDefaultCatalog_Contents(t *testing.T) {
	c := DefaultCatalog()

	ids := []string{}
	for _, p := range c.Profiles() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"eq", "stress", "mbti"}, ids)
	assert.Equal(t, Picks{Strengths: 3, Weaknesses: 2, Recommendations: 3}, c.Picks())
	assert.GreaterOrEqual(t, len(c.strengths), 3)
	assert.GreaterOrEqual(t, len(c.weaknesses), 2)
	assert.GreaterOrEqual(t, len(c.recommendations), 3)

	for _, band := range Bands {
		require.NotEmpty(t, c.summaries[band])
		for i := range c.summaries[band] {
			assert.Contains(t, c.summary(band, i, "某主题"), "某主题")
		}
	}
}

func TestNewCatalog_Errors(t *testing.T) {
	valid := func() CatalogFile {
		return CatalogFile{
			Profiles: []TopicProfile{{ID: "x", Keywords: []string{"x"}, Dimensions: []string{"d"}}},
			Default:  TopicProfile{ID: "default", Dimensions: []string{"d"}},
			Summaries: map[Band][]string{
				BandHigh: {"h"}, BandMid: {"m"}, BandLow: {"l"},
			},
			Descriptions:    []string{"desc"},
			Strengths:       []string{"s"},
			Weaknesses:      []string{"w"},
			Recommendations: []string{"r"},
			Picks:           Picks{1, 1, 1},
		}
	}

	_, err := NewCatalog(valid())
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*CatalogFile)
		wantErr string
	}{
		{"no default dims", func(f *CatalogFile) { f.Default.Dimensions = nil }, "default profile"},
		{"profile without keywords", func(f *CatalogFile) { f.Profiles[0].Keywords = nil }, "no keywords"},
		{"profile without dims", func(f *CatalogFile) { f.Profiles[0].Dimensions = nil }, "no dimensions"},
		{"unknown band", func(f *CatalogFile) { f.Summaries["extreme"] = []string{"e"} }, "unknown summary band"},
		{"missing band", func(f *CatalogFile) { delete(f.Summaries, BandLow) }, "no summary templates"},
		{"bad template", func(f *CatalogFile) { f.Summaries[BandMid] = []string{"{{.Topic"} }, "summary mid[0]"},
		{"unknown template field", func(f *CatalogFile) { f.Summaries[BandHigh] = []string{"ok {{.Topic}}", "{{.Name}} 表现优秀"} }, "summary high[1]"},
		{"blank pool", func(f *CatalogFile) { f.Strengths = []string{"  ", ""} }, "strengths pool is empty"},
		{"zero pick", func(f *CatalogFile) { f.Picks.Weaknesses = 0 }, "weaknesses pick count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(&f)
			_, err := NewCatalog(f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog_RejectsUnknownFields(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader("default:\n  id: d\n  dimensions: [a]\nbogus: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode catalog")
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, builtinCatalog, 0o644))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stress", c.Resolve("压力").ID)

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
