package normalizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"invocr/internal/normalizer"
)

func TestNormalize_Whitespace(t *testing.T) {
	t.Run("collapses_spaces_and_tabs", func(t *testing.T) {
		assert.Equal(t, "a b c", normalizer.Normalize("a  \t b \t\t c"))
	})

	t.Run("preserves_single_newlines", func(t *testing.T) {
		assert.Equal(t, "a\nb", normalizer.Normalize("a\nb"))
	})

	t.Run("caps_blank_runs_at_one_blank_line", func(t *testing.T) {
		assert.Equal(t, "a\n\nb", normalizer.Normalize("a\n\n\n\n\nb"))
	})

	t.Run("trims_surrounding_whitespace", func(t *testing.T) {
		assert.Equal(t, "hello", normalizer.Normalize("  hello  \n"))
	})
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", normalizer.Normalize(""))
	assert.Equal(t, "", normalizer.Normalize("   \t  \n\n  "))
}

func TestNormalize_QuoteVariants(t *testing.T) {
	t.Run("curly_double_quotes", func(t *testing.T) {
		assert.Equal(t, `"name"`, normalizer.Normalize("“name”"))
	})

	t.Run("curly_single_quotes", func(t *testing.T) {
		assert.Equal(t, "'x'", normalizer.Normalize("‘x’"))
	})

	t.Run("hebrew_gershayim_and_geresh", func(t *testing.T) {
		assert.Equal(t, `סה"כ`, normalizer.Normalize("סה״כ"))
		assert.Equal(t, "מס'", normalizer.Normalize("מס׳"))
	})

	t.Run("maqaf_to_hyphen", func(t *testing.T) {
		assert.Equal(t, "בן-גוריון", normalizer.Normalize("בן־גוריון"))
	})

	t.Run("strips_directional_marks", func(t *testing.T) {
		assert.Equal(t, "120.50", normalizer.Normalize("120‎.‏50"))
	})
}

func TestNormalize_HebrewOCRRepairs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"vat_term", "סכום מ ע מ לתשלום", `סכום מע"מ לתשלום`},
		{"company_number", "ח פ 515512341", "ח.פ. 515512341"},
		{"ltd_suffix", "חברת בדיקה בע מ", `חברת בדיקה בע"מ`},
		{"licensed_dealer", "ע מ 12345674", "ע.מ. 12345674"},
		{"total_label", "סה \" כ: 100", `סה"כ: 100`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizer.Normalize(tc.in))
		})
	}
}

func TestNormalize_EnglishOCRRepairs(t *testing.T) {
	assert.Equal(t, "VAT: 17.00", normalizer.Normalize("V A T: 17.00"))
	assert.Equal(t, "GST amount", normalizer.Normalize("G S T amount"))
}

func TestNormalize_LeavesCleanTextAlone(t *testing.T) {
	clean := "חשבונית מס 123456\nחברת בדיקה בע\"מ\nVAT: 17.00"
	assert.Equal(t, clean, normalizer.Normalize(clean))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"plain text",
		"מ ע מ  17%  “total”\n\n\n\nח פ 515512341",
		"V A T\t\tdue:\n סה״כ ₪1,170.00",
		strings.Repeat("שורה עם טקסט ארוך ", 40),
	}
	for _, in := range inputs {
		once := normalizer.Normalize(in)
		assert.Equal(t, once, normalizer.Normalize(once), "input %q", in)
	}
}
