package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 54, ContentWidth(60))
	assert.Equal(t, 72, ContentWidth(200))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(59, 40))
	assert.True(t, IsTooSmall(120, 19))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderHeader_DropsModeWhenNarrow(t *testing.T) {
	wide := RenderHeader("测评报告", "◆ AI gemini-2.5-flash", 120)
	assert.Contains(t, wide, "MindScope")
	assert.Contains(t, wide, "gemini-2.5-flash")

	narrow := RenderHeader("测评报告", "◆ AI gemini-2.5-flash", 40)
	assert.Contains(t, narrow, "测评报告")
	assert.NotContains(t, narrow, "gemini-2.5-flash")
}

func TestRenderFooter_FitsWidth(t *testing.T) {
	hints := []KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "确认"},
		{Key: "1-9", Description: "直接作答"},
		{Key: "Esc", Description: "返回首页并放弃本次测评"},
	}

	full := RenderFooter(hints, 120)
	assert.Contains(t, full, "放弃本次测评")

	short := RenderFooter(hints, 40)
	assert.Contains(t, short, "选择")
	assert.Contains(t, short, "确认")
	assert.NotContains(t, short, "直接作答")
	assert.NotContains(t, short, "放弃本次测评")
}

func TestRenderFrame_KeepsFooterAtBottom(t *testing.T) {
	frame := RenderFrame("H", "body", "F", 30, 10)
	lines := strings.Split(frame, "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "H", lines[0])
	assert.Equal(t, "F", lines[len(lines)-1])
}
