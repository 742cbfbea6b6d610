package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"faqrelay/internal/core/classify"
	"faqrelay/internal/modkit"
	perr "faqrelay/internal/platform/errors"

	decdom "faqrelay/internal/services/decisionlog/domain"
	dom "faqrelay/internal/services/intake/domain"
	revdom "faqrelay/internal/services/review/domain"
)

const faqQuestion = "How do I create a channel?"
const faqAnswer = "Use the + button next to Channels."

type fakeCorpus struct{ cls *classify.Classifier }

func (f fakeCorpus) Snapshot() *classify.Classifier { return f.cls }
func (f fakeCorpus) Reload(context.Context) (classify.Stats, error) {
	return f.cls.Stats(), nil
}

type fakeGen struct {
	mu     sync.Mutex
	calls  int
	result dom.GenResult
}

func (f *fakeGen) Check(_ context.Context, _ string, _ []classify.Entry) dom.GenResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result
}

func (f *fakeGen) called() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	mu         sync.Mutex
	deliveries []string
	dms        []string
	deliverErr error
}

func (f *fakeNotifier) Deliver(_ context.Context, roomID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deliverErr != nil {
		return f.deliverErr
	}
	f.deliveries = append(f.deliveries, roomID+": "+text)
	return nil
}

func (f *fakeNotifier) NotifyUser(_ context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dms = append(f.dms, userID+": "+text)
	return nil
}

// fakeDirectory resolves usernames it knows and errors on the rest
type fakeDirectory struct{ known map[string]string }

func (f fakeDirectory) Resolve(_ context.Context, username string) (string, error) {
	id, ok := f.known[username]
	if !ok {
		return "", perr.NotFoundf("user %s not found", username)
	}
	return id, nil
}

type fakeSelector struct {
	mu   sync.Mutex
	seen [][]string
	err  error
}

func (f *fakeSelector) SelectNext(_ context.Context, reviewers []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.seen = append(f.seen, reviewers)
	return reviewers[0], nil
}

type fakeCreator struct {
	mu      sync.Mutex
	created []revdom.NewReview
	err     error
}

func (f *fakeCreator) Create(_ context.Context, n revdom.NewReview) (revdom.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return revdom.Review{}, f.err
	}
	f.created = append(f.created, n)
	return revdom.Review{
		ID:               "rv-1",
		SourceMessageID:  n.SourceMessageID,
		RoomID:           n.RoomID,
		RoomName:         n.RoomName,
		SenderUsername:   n.SenderUsername,
		OriginalMessage:  n.OriginalMessage,
		DetectedQuestion: n.DetectedQuestion,
		ProposedAnswer:   n.ProposedAnswer,
		AssignedTo:       n.AssignedTo,
		Status:           revdom.StatusPending,
	}, nil
}

type fakeRecorder struct {
	mu   sync.Mutex
	recs []decdom.Decision
}

func (f *fakeRecorder) Record(_ context.Context, d decdom.Decision) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, d)
}

func (f *fakeRecorder) last(t *testing.T) decdom.Decision {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.recs) == 0 {
		t.Fatal("no decision recorded")
	}
	return f.recs[len(f.recs)-1]
}

// fakeKV remembers keys like a redis SETNX would
type fakeKV struct {
	mu   sync.Mutex
	keys map[string]struct{}
	err  error
}

func (f *fakeKV) SetNX(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.keys == nil {
		f.keys = map[string]struct{}{}
	}
	if _, ok := f.keys[key]; ok {
		return false, nil
	}
	f.keys[key] = struct{}{}
	return true, nil
}

func (f *fakeKV) Close() error { return nil }

type harness struct {
	svc      *Svc
	gen      *fakeGen
	notify   *fakeNotifier
	selector *fakeSelector
	creator  *fakeCreator
	recorder *fakeRecorder
}

func newHarness(cfg Config) *harness {
	h := &harness{
		gen:      &fakeGen{},
		notify:   &fakeNotifier{},
		selector: &fakeSelector{},
		creator:  &fakeCreator{},
		recorder: &fakeRecorder{},
	}
	cls := classify.New(
		[]classify.Entry{{Question: faqQuestion, Answer: faqAnswer}},
		classify.Options{},
	)
	h.svc = New(modkit.Deps{}, cfg, Ports{
		Corpus:    fakeCorpus{cls: cls},
		Generator: h.gen,
		Notifier:  h.notify,
		Directory: fakeDirectory{known: map[string]string{"alice": "uid-a", "bob": "uid-b"}},
		Selector:  h.selector,
		Reviews:   h.creator,
		Decisions: h.recorder,
	})
	return h
}

func event(text string) dom.MessageEvent {
	return dom.MessageEvent{
		MessageID:      "msg-1",
		RoomID:         "room-1",
		RoomName:       "town-square",
		SenderID:       "user-9",
		SenderUsername: "casey",
		Text:           text,
	}
}

func TestHandleMessage_DirectMatchAnswers(t *testing.T) {
	h := newHarness(Config{ReviewMode: true, Reviewers: []string{"alice"}})

	res, err := h.svc.HandleMessage(context.Background(), event(faqQuestion))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Outcome != dom.OutcomeAnswered {
		t.Fatalf("outcome = %s, want answered", res.Outcome)
	}
	if res.Answer != faqAnswer {
		t.Fatalf("answer = %q, want corpus answer", res.Answer)
	}
	if h.gen.called() != 0 {
		t.Fatal("direct match must not call the generator")
	}
	if len(h.notify.deliveries) != 1 || !strings.Contains(h.notify.deliveries[0], faqAnswer) {
		t.Fatalf("deliveries = %v, want one with corpus answer", h.notify.deliveries)
	}
	d := h.recorder.last(t)
	if d.Kind != decdom.KindDirect || d.MatchedQuestion != faqQuestion {
		t.Fatalf("decision = %+v, want direct with matched question", d)
	}
}

func TestHandleMessage_ShortMessageDropped(t *testing.T) {
	h := newHarness(Config{ReviewMode: true, Reviewers: []string{"alice"}})

	res, err := h.svc.HandleMessage(context.Background(), event("hi"))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Outcome != dom.OutcomeDropped {
		t.Fatalf("outcome = %s, want dropped", res.Outcome)
	}
	if h.gen.called() != 0 || len(h.notify.deliveries) != 0 {
		t.Fatal("short messages must not reach the generator or the room")
	}
}

func TestHandleMessage_BotSenderIgnored(t *testing.T) {
	h := newHarness(Config{})

	ev := event(faqQuestion)
	ev.SenderIsBot = true
	res, err := h.svc.HandleMessage(context.Background(), ev)
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Outcome != dom.OutcomeIgnored {
		t.Fatalf("outcome = %s, want ignored", res.Outcome)
	}
}

func TestHandleMessage_RequiresIDs(t *testing.T) {
	h := newHarness(Config{})

	ev := event(faqQuestion)
	ev.RoomID = " "
	if _, err := h.svc.HandleMessage(context.Background(), ev); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestHandleMessage_ProbableEscalates(t *testing.T) {
	h := newHarness(Config{ReviewMode: true, Reviewers: []string{"alice", "bob"}})
	h.gen.result = dom.GenResult{
		Matched:          true,
		Answer:           "Click the + next to Channels.",
		DetectedQuestion: faqQuestion,
	}

	res, err := h.svc.HandleMessage(context.Background(), event("can u help me make a new channel"))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Outcome != dom.OutcomeEscalated {
		t.Fatalf("outcome = %s, want escalated", res.Outcome)
	}
	if res.ReviewID != "rv-1" || res.Reviewer != "alice" {
		t.Fatalf("result = %+v, want rv-1 assigned to alice", res)
	}
	if len(h.creator.created) != 1 {
		t.Fatalf("created %d reviews, want 1", len(h.creator.created))
	}
	n := h.creator.created[0]
	if n.ProposedAnswer != "Click the + next to Channels." || n.DetectedQuestion != faqQuestion {
		t.Fatalf("review capture = %+v", n)
	}
	// nothing posted to the room yet, only the reviewer DM
	if len(h.notify.deliveries) != 0 {
		t.Fatalf("deliveries = %v, want none before approval", h.notify.deliveries)
	}
	if len(h.notify.dms) != 1 || !strings.HasPrefix(h.notify.dms[0], "uid-a: ") {
		t.Fatalf("dms = %v, want one to alice", h.notify.dms)
	}
	d := h.recorder.last(t)
	if d.Kind != decdom.KindProbable || d.ReviewID != "rv-1" || d.ReviewerID != "alice" {
		t.Fatalf("decision = %+v", d)
	}
}

func TestHandleMessage_GenerationFailureDrops(t *testing.T) {
	h := newHarness(Config{ReviewMode: true, Reviewers: []string{"alice"}})
	h.gen.result = dom.GenResult{Err: "backend timeout"}

	res, err := h.svc.HandleMessage(context.Background(), event("can u help me make a new channel"))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Outcome != dom.OutcomeDropped {
		t.Fatalf("outcome = %s, want dropped", res.Outcome)
	}
	if len(h.creator.created) != 0 || len(h.notify.deliveries) != 0 {
		t.Fatal("failed generation must not create reviews or deliver")
	}
	if d := h.recorder.last(t); d.Kind != decdom.KindProbable || d.ReviewID != "" {
		t.Fatalf("decision = %+v, want probable without review", d)
	}
}

func TestHandleMessage_ReviewModeOffDeliversDirectly(t *testing.T) {
	h := newHarness(Config{ReviewMode: false})
	h.gen.result = dom.GenResult{Matched: true, Answer: "Generated answer.", DetectedQuestion: faqQuestion}

	res, err := h.svc.HandleMessage(context.Background(), event("can u help me make a new channel"))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Outcome != dom.OutcomeAnswered || res.Answer != "Generated answer." {
		t.Fatalf("result = %+v, want answered with generated text", res)
	}
	if len(h.creator.created) != 0 {
		t.Fatal("review mode off must not create reviews")
	}
	if len(h.notify.deliveries) != 1 {
		t.Fatalf("deliveries = %v, want one", h.notify.deliveries)
	}
}

func TestHandleMessage_UnresolvedReviewersSkipped(t *testing.T) {
	h := newHarness(Config{ReviewMode: true, Reviewers: []string{"ghost", "bob", ""}})
	h.gen.result = dom.GenResult{Matched: true, Answer: "A.", DetectedQuestion: faqQuestion}

	res, err := h.svc.HandleMessage(context.Background(), event("can u help me make a new channel"))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Reviewer != "bob" {
		t.Fatalf("reviewer = %q, want bob (ghost skipped)", res.Reviewer)
	}
	if len(h.selector.seen) != 1 || len(h.selector.seen[0]) != 1 || h.selector.seen[0][0] != "bob" {
		t.Fatalf("selector saw %v, want [bob] only", h.selector.seen)
	}
}

func TestHandleMessage_NoResolvableReviewerIsNotFound(t *testing.T) {
	h := newHarness(Config{ReviewMode: true, Reviewers: []string{"ghost"}})
	h.gen.result = dom.GenResult{Matched: true, Answer: "A.", DetectedQuestion: faqQuestion}

	_, err := h.svc.HandleMessage(context.Background(), event("can u help me make a new channel"))
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(h.creator.created) != 0 {
		t.Fatal("no review may be created without a reviewer")
	}
}

func TestHandleMessage_DedupSuppressesRepeat(t *testing.T) {
	h := newHarness(Config{Dedup: true, DedupTTL: time.Minute})
	h.svc.kv = &fakeKV{}

	first, err := h.svc.HandleMessage(context.Background(), event(faqQuestion))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Outcome != dom.OutcomeAnswered {
		t.Fatalf("first outcome = %s, want answered", first.Outcome)
	}

	second, err := h.svc.HandleMessage(context.Background(), event(faqQuestion))
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Outcome != dom.OutcomeDuplicate {
		t.Fatalf("second outcome = %s, want duplicate", second.Outcome)
	}
	if len(h.notify.deliveries) != 1 {
		t.Fatalf("deliveries = %d, want exactly 1", len(h.notify.deliveries))
	}
}

func TestHandleMessage_DedupFailureLetsMessageThrough(t *testing.T) {
	h := newHarness(Config{Dedup: true, DedupTTL: time.Minute})
	h.svc.kv = &fakeKV{err: errors.New("redis down")}

	res, err := h.svc.HandleMessage(context.Background(), event(faqQuestion))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Outcome != dom.OutcomeAnswered {
		t.Fatalf("outcome = %s, want answered despite dedup failure", res.Outcome)
	}
}
