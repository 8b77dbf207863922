package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchOverlay(t *testing.T) {
	s := NewSearchOverlay(testStyles(), "")
	require.NotNil(t, s)
	assert.Equal(t, 0, s.matchCount)
	assert.Equal(t, "", s.Query())
}

func TestNewSearchOverlay_Prefilled(t *testing.T) {
	s := NewSearchOverlay(testStyles(), "milk")
	assert.Equal(t, "milk", s.Query())
}

func TestSearchOverlay_TitleAndSize(t *testing.T) {
	s := NewSearchOverlay(testStyles(), "")
	assert.Equal(t, "", s.Title())

	width, height := s.Size()
	assert.Equal(t, 0, width, "width should be 0 for full-width")
	assert.Equal(t, 1, height, "height should be 1 for single line")
}

func TestSearchOverlay_Init(t *testing.T) {
	s := NewSearchOverlay(testStyles(), "")
	assert.NotNil(t, s.Init())
}

func TestSearchOverlay_TypingEmitsSearchMsg(t *testing.T) {
	s := NewSearchOverlay(testStyles(), "")

	var last SearchMsg
	for _, ch := range "buy" {
		model, cmd := s.Update(keyMsg(string(ch)))
		s = model.(*SearchOverlay)
		require.NotNil(t, cmd)

		msg, ok := hasMsg[SearchMsg](drain(cmd))
		require.True(t, ok, "expected SearchMsg after typing %q", ch)
		last = msg
	}

	assert.Equal(t, "buy", last.Query)
	assert.Equal(t, "buy", s.Query())
}

func TestSearchOverlay_EnterKeepsQuery(t *testing.T) {
	s := NewSearchOverlay(testStyles(), "milk")

	_, cmd := s.Update(keyMsg("enter"))
	msgs := drain(cmd)

	_, closed := hasMsg[CloseOverlayMsg](msgs)
	assert.True(t, closed)
	_, searched := hasMsg[SearchMsg](msgs)
	assert.False(t, searched, "enter should not change the query")
	assert.Equal(t, "milk", s.Query())
}

func TestSearchOverlay_EscClearsQuery(t *testing.T) {
	s := NewSearchOverlay(testStyles(), "milk")

	_, cmd := s.Update(keyMsg("esc"))
	msgs := drain(cmd)

	search, ok := hasMsg[SearchMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "", search.Query)
	_, closed := hasMsg[CloseOverlayMsg](msgs)
	assert.True(t, closed)
	assert.Equal(t, "", s.Query())
}

func TestSearchOverlay_ViewMatchCount(t *testing.T) {
	tests := []struct {
		name  string
		query string
		count int
		want  string
	}{
		{"no query hides count", "", 3, ""},
		{"singular", "a", 1, "(1 match)"},
		{"plural", "a", 2, "(2 matches)"},
		{"zero", "zzz", 0, "(0 matches)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearchOverlay(testStyles(), tt.query)
			s.SetMatchCount(tt.count)
			view := s.View()
			if tt.want == "" {
				assert.NotContains(t, view, "match")
				return
			}
			assert.True(t, strings.Contains(view, tt.want), "view %q should contain %q", view, tt.want)
		})
	}
}
