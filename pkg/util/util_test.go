package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandStringWithUpperLowerNum(t *testing.T) {
	s := GenerateRandStringWithUpperLowerNum(8)
	assert.Len(t, s, 8)
	for _, r := range s {
		assert.Contains(t, randCharset, string(r))
	}
}

func TestSanitizePathName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fofoca do Dia: EXCLUSIVO!", "Fofoca_do_Dia_EXCLUSIVO!"},
		{`a/b\c*d`, "a_b_c_d"},
		{"  espaços  múltiplos  ", "espaços_múltiplos"},
		{"///", "untitled"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizePathName(tt.in), "input %q", tt.in)
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "curto", TruncateRunes("curto", 10))
	assert.Equal(t, "polêmic…", TruncateRunes("polêmica enorme", 8))
	assert.Equal(t, "p", TruncateRunes("polêmica", 1))
}

func TestFormatSrtTime(t *testing.T) {
	assert.Equal(t, "00:00:00,000", FormatSrtTime(0))
	assert.Equal(t, "00:00:05,500", FormatSrtTime(5.5))
	assert.Equal(t, "00:02:03,250", FormatSrtTime(123.25))
	assert.Equal(t, "01:00:00,000", FormatSrtTime(3600))
	assert.Equal(t, "00:00:00,000", FormatSrtTime(-3))
}

func TestWrapSubtitleText(t *testing.T) {
	lines := WrapSubtitleText("essa é a fofoca mais quente do dia inteiro", 20)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
	assert.Equal(t, []string{"essa é a fofoca mais", "quente do dia", "inteiro"}, lines)

	assert.Nil(t, WrapSubtitleText("   ", 20))
	assert.Equal(t, []string{"palavraenormequenaocabe"}, WrapSubtitleText("palavraenormequenaocabe", 10))
}

func TestEscapeFfmpegText(t *testing.T) {
	assert.Equal(t, `FAMOSOS\: BARRACO`, EscapeFfmpegText("FAMOSOS: BARRACO"))
	assert.Equal(t, `100\% real`, EscapeFfmpegText("100% real"))
	assert.Equal(t, `ta\'s`, EscapeFfmpegText("ta's"))
}

func TestExtractJsonFromText(t *testing.T) {
	fenced := "claro! segue:\n```json\n{\"headline\": \"BARRACO AO VIVO\"}\n```\nespero que ajude"
	assert.Equal(t, `{"headline": "BARRACO AO VIVO"}`, ExtractJsonFromText(fenced))

	bare := `aqui está {"headline": "TRETA"} como pedido`
	assert.Equal(t, `{"headline": "TRETA"}`, ExtractJsonFromText(bare))

	assert.Equal(t, "sem json nenhum", ExtractJsonFromText("sem json nenhum"))
}
