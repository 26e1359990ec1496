package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skosovsky/geminikit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_parseError(t *testing.T) {
	t.Parallel()
	_, err := New("broken", []TurnTemplate{{Role: geminikit.RoleUser, Content: "{{ .Text "}})
	require.ErrorIs(t, err, ErrTemplateParse)
	assert.Contains(t, err.Error(), "broken turn 0")
}

func TestMustNew_panics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		MustNew("broken", []TurnTemplate{{Role: geminikit.RoleUser, Content: "{{ end }}"}})
	})
}

func TestTemplate_Render(t *testing.T) {
	t.Parallel()
	tpl, err := New("echo", []TurnTemplate{
		{Role: geminikit.RoleUser, Content: "Say: ```{{ fence .Text }}```"},
		{Role: geminikit.RoleModel, Content: "{{ trim .Text }}"},
	})
	require.NoError(t, err)

	conv, err := tpl.Render(map[string]any{"Text": "  a```b  "})
	require.NoError(t, err)
	assert.Equal(t, geminikit.Conversation{
		geminikit.NewTextTurn(geminikit.RoleUser, "Say: ```  a####b  ```"),
		geminikit.NewTextTurn(geminikit.RoleModel, "a```b"),
	}, conv)
}

func TestTemplate_Render_missingKey(t *testing.T) {
	t.Parallel()
	tpl := MustNew("strict", []TurnTemplate{{Role: geminikit.RoleUser, Content: "{{ .Missing }}"}})
	_, err := tpl.Render(map[string]any{})
	require.ErrorIs(t, err, ErrTemplateRender)
}
