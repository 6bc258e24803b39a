package aksara_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/text/aksara"
)

func TestTransliterate_InherentVowel(t *testing.T) {
	// "ha na ca ra ka": the inherent a needs no sandhangan.
	got := aksara.Transliterate("hanacaraka")
	assert.Equal(t, []rune{
		aksara.LetterHa, aksara.LetterNa, aksara.LetterCa,
		aksara.LetterRa, aksara.LetterKa,
	}, got)
}

func TestTransliterate_VowelSigns(t *testing.T) {
	tests := []struct {
		in   string
		want []rune
	}{
		{"ki", []rune{aksara.LetterKa, aksara.SignWulu}},
		{"ku", []rune{aksara.LetterKa, aksara.SignSuku}},
		{"ke", []rune{aksara.LetterKa, aksara.SignPepet}},
		{"ko", []rune{aksara.LetterKa, aksara.SignTaling, aksara.SignTarung}},
		{"ka", []rune{aksara.LetterKa}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, aksara.Transliterate(tc.in))
		})
	}
}

func TestTransliterate_DigraphsMatchLongestFirst(t *testing.T) {
	assert.Equal(t, []rune{aksara.LetterNga}, aksara.Transliterate("nga"))
	assert.Equal(t, []rune{aksara.LetterNya}, aksara.Transliterate("nya"))
	assert.Equal(t, []rune{aksara.LetterTha}, aksara.Transliterate("tha"))
	assert.Equal(t, []rune{aksara.LetterDha}, aksara.Transliterate("dha"))
	// Without the following vowel "n" + "g..." would be wrong; the digraph
	// still wins the match.
	assert.Equal(t, []rune{aksara.LetterNga, aksara.SignWulu}, aksara.Transliterate("ngi"))
}

func TestTransliterate_FinalConsonantSigns(t *testing.T) {
	// Special codas use their sign instead of pangkon.
	assert.Equal(t, []rune{aksara.LetterPa, aksara.SignLayar}, aksara.Transliterate("par"))
	assert.Equal(t, []rune{aksara.LetterGa, aksara.SignWignyan}, aksara.Transliterate("gah"))
	assert.Equal(t, []rune{aksara.LetterBa, aksara.SignCecak}, aksara.Transliterate("bang"))
}

func TestTransliterate_PangkonKillsFinal(t *testing.T) {
	assert.Equal(t, []rune{
		aksara.LetterPa, aksara.LetterSa, aksara.SignPangkon,
	}, aksara.Transliterate("pas"))
}

func TestTransliterate_BareVowelRidesCarrier(t *testing.T) {
	assert.Equal(t, []rune{aksara.LetterHa, aksara.SignWulu}, aksara.Transliterate("i"))
}

func TestTransliterate_PassthroughAndCase(t *testing.T) {
	upper := aksara.Transliterate("HaNa")
	lower := aksara.Transliterate("hana")
	assert.Equal(t, lower, upper)

	got := aksara.Transliterate("ka ka")
	assert.Equal(t, []rune{aksara.LetterKa, ' ', aksara.LetterKa}, got)
}

func TestTransliterate_Deterministic(t *testing.T) {
	const input = "aksara jawa ngoko"
	first := aksara.Transliterate(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, aksara.Transliterate(input))
	}
}

func TestRender_MarksAttachToBase(t *testing.T) {
	base := aksara.Render("ka", aksara.Options{Size: 20})
	marked := aksara.Render("ki", aksara.Options{Size: 20})
	assert.Greater(t, len(marked), len(base))

	// The wulu sits above the base cell.
	baseMin, _, ok := base.Bounds()
	require.True(t, ok)
	markedMin, _, ok := marked.Bounds()
	require.True(t, ok)
	assert.Less(t, markedMin.Y, baseMin.Y)
}

func TestRender_LoneConsonantGetsPangkon(t *testing.T) {
	out := aksara.Render("k", aksara.Options{Size: 20})
	base := aksara.Render("ka", aksara.Options{Size: 20})
	assert.Greater(t, len(out), len(base))
}

func TestEval(t *testing.T) {
	out, err := aksara.Eval(domain.Params{"text": "carakan", "size": 18.0})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = aksara.Eval(domain.Params{"size": -1})
	assert.ErrorIs(t, err, domain.ErrParameter)
}
