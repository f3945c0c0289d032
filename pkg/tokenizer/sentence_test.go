package tokenizer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func joinSentences(sentences [][]string) string {
	var b strings.Builder
	for _, s := range sentences {
		for _, w := range s {
			b.WriteString(w)
		}
	}
	return b.String()
}

func TestSentenceTokenize_Corpus(t *testing.T) {
	tests := []struct {
		name     string
		expected [][]string
	}{
		{
			name: "curly quotes and possessives",
			expected: [][]string{
				{
					"Maslow", "’s ", "‘‘", "Third ", "Force ", "Psychology ", "Theory",
					"’’ ", "even ", "allows ", "literary ", "analysts ", "to ",
					"critically ", "understand ", "how ", "characters ", "reflect ",
					"the ", "culture ", "and ", "the ", "history ", "in ", "which ",
					"they ", "are ", "contextualized", ". ",
				},
				{
					"It ", "also ", "allows ", "analysts ", "to ", "understand ", "the ",
					"author", "’s ", "intended ", "message ", "and ", "to ", "understand ",
					"the ", "author", "’s ", "psychology", ". ",
				},
				{
					"The ", "theory ", "suggests ", "that ", "human ", "beings ",
					"possess ", "a ", "nature ", "within ", "them ", "that ",
					"demonstrates ", "their ", "true ", "“", "self", "” ", "and ", "it ",
					"suggests ", "that ", "the ", "fulfillment ", "of ", "this ",
					"nature ", "is ", "the ", "reason ", "for ", "living", ". ",
				},
				{
					"It ", "also ", "suggests ", "that ", "neurological ", "development ",
					"hinders ", "actualizing ", "the ", "nature ", "because ", "a ",
					"person ", "becomes ", "estranged ", "from ", "his ", "or ", "her ",
					"true ", "self", ". ",
				},
				{
					"Therefore", ", ", "literary ", "devices ", "reflect ", "a ",
					"characters", "’s ", "and ", "an ", "author", "’s ", "natural ",
					"self", ". ",
				},
				{
					"In ", "his ", "‘‘", "Third ", "Force ", "Psychology ", "and ", "the ",
					"Study ", "of ", "Literature", "’’", ", ", "Paris ", "argues ", "“",
					"D.", "H ", "Lawrence", "’s ", "“", "pristine ", "unconscious", "” ",
					"is ", "a ", "metaphor ", "for ", "the ", "real ", "self", "”", ". ",
				},
				{
					"Thus ", "Literature ", "is ", "a ", "reputable ", "tool ", "that ",
					"allows ", "readers ", "to ", "develop ", "and ", "apply ",
					"critical ", "reasoning ", "to ", "the ", "nature ", "of ", "emotions",
					".",
				},
			},
		},
		{
			name: "unequal quote count",
			expected: [][]string{
				{
					"Beyoncé", "'s ", "vocal ", "range ", "spans ", "four ", "octaves",
					". ",
				},
				{
					"Jody ", "Rosen ", "highlights ", "her ", "tone ", "and ", "timbre ",
					"as ", "particularly ", "distinctive", ", ", "describing ", "her ",
					"voice ", "as ", "\"", "one ", "of ", "the ", "most ", "compelling ",
					"instruments ", "in ", "popular ", "music", "\"", ". ",
				},
				{
					"While ", "another ", "critic ", "says ", "she ", "is ", "a ", "\"",
					"Vocal ", "acrobat", ", ", "being ", "able ", "to ", "sing ", "long ",
					"and ", "complex ", "melismas ", "and ", "vocal ", "runs ",
					"effortlessly", ", ", "and ", "in ", "key", ". ",
				},
				{
					"Her ", "vocal ", "abilities ", "mean ", "she ", "is ", "identified ",
					"as ", "the ", "centerpiece ", "of ", "Destiny", "'s ", "Child", ". ",
				},
				{
					"The ", "Daily ", "Mail ", "calls ", "Beyoncé", "'s ", "voice ", "\"",
					"versatile", "\"", ", ", "capable ", "of ", "exploring ", "power ",
					"ballads", ", ", "soul", ", ", "rock ", "belting", ", ", "operatic ",
					"flourishes", ", ", "and ", "hip ", "hop", ". ",
				},
				{
					"Jon ", "Pareles ", "of ", "The ", "New ", "York ", "Times ",
					"commented ", "that ", "her ", "voice ", "is ", "\"", "velvety ",
					"yet ", "tart", ", ", "with ", "an ", "insistent ", "flutter ", "and ",
					"reserves ", "of ", "soul ", "belting", "\"", ". ",
				},
				{
					"Rosen ", "notes ", "that ", "the ", "hip ", "hop ", "era ", "highly ",
					"influenced ", "Beyoncé", "'s ", "strange ", "rhythmic ", "vocal ",
					"style", ", ", "but ", "also ", "finds ", "her ", "quite ",
					"traditionalist ", "in ", "her ", "use ", "of ", "balladry", ", ",
					"gospel ", "and ", "falsetto", ". ",
				},
				{
					"Other ", "critics ", "praise ", "her ", "range ", "and ", "power",
					", ", "with ", "Chris ", "Richards ", "of ", "The ", "Washington ",
					"Post ", "saying ", "she ", "was ", "\"", "capable ", "of ",
					"punctuating ", "any ", "beat ", "with ", "goose", "-", "bump", "-",
					"inducing ", "whispers ", "or ", "full", "-", "bore ", "diva", "-",
					"roars", ".", "\"",
				},
			},
		},
		{
			name: "period contained in quotes",
			expected: [][]string{
				{
					"the ", "gray ", "bird ", "(", "which ", "was ",
					"famous ", "for ", "its ", "colors", ".", ") ",
					"was ", "ressurected ", `" `, "she ", "said", ".", `"`,
				},
			},
		},
		{
			name: "quoted sentence followed by uppercase stays open",
			expected: [][]string{
				{"He ", "said ", `"`, "Stop", ".", `" `, "Then ", "he ", "left", "."},
			},
		},
		{
			name: "parenthetical sentence at start",
			expected: [][]string{
				{"(", "Stop ", "here", ".", ") "},
				{"Then ", "go", "."},
			},
		},
		{
			name: "lowercase and continuation punctuation keep the sentence going",
			expected: [][]string{
				{
					"He ", "met ", "Dr. ", "Smith", ". ", "it ", "rained", "; ",
					"then", ", ", "sun", ".",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SentenceTokenize(joinSentences(tt.expected), true, true)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("sentences mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSentenceTokenize_StripsWhitespace(t *testing.T) {
	got := SentenceTokenize("Hello there.  How are you? Fine, thanks!", false, true)
	assert.Equal(t, [][]string{
		{"Hello", "there", "."},
		{"How", "are", "you", "?"},
		{"Fine", ",", "thanks", "!"},
	}, got)
}

func TestSentenceTokenize_WhitespaceOnlyTokenKeepsItsPlace(t *testing.T) {
	got := SentenceTokenize("  Hi. Bye.", false, true)
	assert.Equal(t, [][]string{{"", "Hi", "."}, {"Bye", "."}}, got)
}

func TestSentenceTokenize_Empty(t *testing.T) {
	assert.Empty(t, SentenceTokenize("", false, true))
	assert.Empty(t, SentenceTokenize("", true, false))
}

func TestSentenceTokenize_Partition(t *testing.T) {
	for _, text := range propertyCorpus {
		for _, normalize := range []bool{false, true} {
			expected := text
			if normalize {
				expected = Normalize(text)
			}
			got := SentenceTokenize(text, true, normalize)
			assert.Equal(t, expected, joinSentences(got), "input %q", text)
			for _, s := range got {
				assert.NotEmpty(t, s, "input %q", text)
			}
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences(Group([]string{"Cat ", "sat", ". ", "Cat ", "'s ", "named ", "Cool", "."}))
	assert.Equal(t, [][]string{
		{"Cat ", "sat", ". "},
		{"Cat ", "'s ", "named ", "Cool", "."},
	}, got)
}

func TestSplitSentences_TrailingPeriodDetached(t *testing.T) {
	got := SplitSentences(Group([]string{"It ", "is ", "cold."}))
	assert.Equal(t, [][]string{{"It ", "is ", "cold", "."}}, got)
}

func TestIsEndSymbol(t *testing.T) {
	for _, s := range []string{".", "...", "!!!", "?!", "…", "....", ".."} {
		assert.True(t, isEndSymbol(s), s)
	}
	for _, s := range []string{"", ",", "a.", "?.", "Mr."} {
		assert.False(t, isEndSymbol(s), s)
	}
}
