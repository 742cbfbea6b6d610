package classify

import (
	"testing"
)

var channelCorpus = []Entry{
	{Question: "How do I create a channel?", Answer: "Open the sidebar and press the plus button."},
}

func TestClassify_ShortMessagesAreUnrelated(t *testing.T) {
	c := New(channelCorpus, Options{})

	for _, in := range []string{"", "hi", "hey!", "   ok   ", "​​ok"} {
		got := c.Classify(in)
		if got.Kind != KindUnrelated {
			t.Fatalf("Classify(%q).Kind = %q, want unrelated", in, got.Kind)
		}
	}

	// exactly at the minimum length passes the filter
	if got := c.Classify("hello"); got.Kind == KindUnrelated {
		t.Fatalf("five-rune message classified unrelated")
	}
}

func TestClassify_DirectMatch(t *testing.T) {
	c := New(channelCorpus, Options{Threshold: 0.99})

	got := c.Classify("How do I create a channel?")
	if got.Kind != KindDirect {
		t.Fatalf("Kind = %q, want direct (score %v)", got.Kind, got.Score)
	}
	if got.Score < 0.99 {
		t.Fatalf("Score = %v, want >= 0.99", got.Score)
	}
	if got.Entry.Question != channelCorpus[0].Question || got.Entry.Answer != channelCorpus[0].Answer {
		t.Fatalf("Entry = %+v, want the matched corpus entry", got.Entry)
	}
}

func TestClassify_ProbableEscalates(t *testing.T) {
	c := New(channelCorpus, Options{Threshold: 0.99})

	got := c.Classify("can u help me make a new channel")
	if got.Kind != KindProbable {
		t.Fatalf("Kind = %q, want probable (score %v)", got.Kind, got.Score)
	}
	if got.Score <= 0 || got.Score >= 0.99 {
		t.Fatalf("Score = %v, want in (0, 0.99)", got.Score)
	}
}

func TestClassify_EverythingElseEscalates(t *testing.T) {
	c := New(channelCorpus, Options{})

	// no overlap with the corpus at all, still probable once past the
	// length filter
	got := c.Classify("my invoice from march is wrong")
	if got.Kind != KindProbable {
		t.Fatalf("Kind = %q, want probable", got.Kind)
	}
	if got.Score != 0 {
		t.Fatalf("Score = %v, want 0 for zero-overlap query", got.Score)
	}
}

func TestClassify_EmptyCorpus(t *testing.T) {
	c := New(nil, Options{})

	got := c.Classify("where did my files go")
	if got.Kind != KindProbable || got.Score != 0 {
		t.Fatalf("got (%q, %v), want probable with score 0", got.Kind, got.Score)
	}
}

func TestThreshold_ClampedAtConstruction(t *testing.T) {
	c := New(channelCorpus, Options{Threshold: 0.1, MinThreshold: 0.8})

	if c.Threshold() != 0.8 {
		t.Fatalf("Threshold = %v, want clamped to 0.8", c.Threshold())
	}

	// a score that clears the requested 0.1 but not the floor must not be direct
	got := c.Classify("can u help me make a new channel")
	if got.Kind == KindDirect {
		t.Fatalf("score %v took direct path below the clamp floor", got.Score)
	}
}

func TestThreshold_ClampedOnRebuild(t *testing.T) {
	// threshold updates build a replacement classifier; the clamp must hold
	// there too, not only on first construction
	c := New(channelCorpus, Options{Threshold: 0.99, MinThreshold: 0.8})
	c = New(c.Entries(), Options{Threshold: 0.05, MinThreshold: 0.8})

	if c.Threshold() != 0.8 {
		t.Fatalf("Threshold after rebuild = %v, want 0.8", c.Threshold())
	}
}

func TestQuestionFilter(t *testing.T) {
	corpus := []Entry{{Question: "pricing plans overview", Answer: "See the pricing page."}}
	c := New(corpus, Options{Threshold: 0.8, QuestionFilter: true})

	// not question shaped and not a direct match: dropped instead of escalated
	if got := c.Classify("need pricing details please"); got.Kind != KindUnrelated {
		t.Fatalf("statement Kind = %q, want unrelated with filter on", got.Kind)
	}

	// a question mark anywhere keeps the escalation path open
	if got := c.Classify("what about pricing?"); got.Kind != KindProbable {
		t.Fatalf("question Kind = %q, want probable", got.Kind)
	}

	// leading interrogative with no question mark also counts
	if got := c.Classify("how is pricing structured"); got.Kind != KindProbable {
		t.Fatalf("interrogative Kind = %q, want probable", got.Kind)
	}

	// direct matches never consult the filter
	if got := c.Classify("pricing plans overview"); got.Kind != KindDirect {
		t.Fatalf("exact match Kind = %q, want direct despite filter", got.Kind)
	}
}

func TestStats(t *testing.T) {
	c := New(channelCorpus, Options{Threshold: 0.99})

	s := c.Stats()
	if s.CorpusSize != 1 {
		t.Fatalf("CorpusSize = %d, want 1", s.CorpusSize)
	}
	if s.Vocab == 0 || s.AvgDocLen == 0 {
		t.Fatalf("Stats not populated: %+v", s)
	}
	if s.Threshold != 0.99 || s.MinLength != 5 {
		t.Fatalf("Stats policy fields wrong: %+v", s)
	}
}
