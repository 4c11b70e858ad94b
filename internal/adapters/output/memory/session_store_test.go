package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GityImran/ideation-lab/internal/domain"
)

const testBaseURL = "https://class.example.com"

var ctx = context.Background()

func quizRequest(id string) domain.NewSession {
	return domain.NewSession{
		SessionID:   id,
		ContentKind: domain.ContentKindQuiz,
		Payload:     json.RawMessage(`[{"question":"Q","options":["A","B"],"correctIndex":1}]`),
	}
}

// fixedClock returns a clock function pinned to t
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ============================================================================
// Lifecycle scenario
// ============================================================================

// TestSessionLifecycleScenario walks a quiz session from creation to deletion
func TestSessionLifecycleScenario(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)

	if _, _, err := store.Create(ctx, quizRequest("s1")); err != nil {
		t.Fatalf("expected no error on Create, got %v", err)
	}

	session, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error on Get, got %v", err)
	}
	if session == nil {
		t.Fatal("expected session s1 to exist")
	}
	if !session.IsActive {
		t.Error("expected new session to be active")
	}
	if len(session.Participants) != 0 {
		t.Errorf("expected no participants, got %v", session.Participants)
	}
	if !strings.HasSuffix(session.AccessURL, "/s1/quiz") {
		t.Errorf("expected AccessURL to end with /s1/quiz, got %s", session.AccessURL)
	}

	if ok, _ := store.AddParticipant(ctx, "s1", "p1"); !ok {
		t.Error("expected AddParticipant to return true")
	}
	participants, _ := store.ListParticipants(ctx, "s1")
	if len(participants) != 1 || participants[0] != "p1" {
		t.Errorf("expected [p1], got %v", participants)
	}

	if ok, _ := store.Deactivate(ctx, "s1"); !ok {
		t.Error("expected Deactivate to return true")
	}
	session, _ = store.Get(ctx, "s1")
	if session.IsActive {
		t.Error("expected session to be inactive after Deactivate")
	}

	if ok, _ := store.Delete(ctx, "s1"); !ok {
		t.Error("expected Delete to return true")
	}
	session, _ = store.Get(ctx, "s1")
	if session != nil {
		t.Error("expected nil after Delete")
	}
}

// ============================================================================
// Create semantics
// ============================================================================

// TestCreateOverwritesExistingSession tests last-write-wins on the same id
func TestCreateOverwritesExistingSession(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	first := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	store.now = fixedClock(first)
	_, overwritten, _ := store.Create(ctx, domain.NewSession{
		SessionID:   "dup",
		ContentKind: domain.ContentKindFlashcards,
		Payload:     json.RawMessage(`["old"]`),
	})
	if overwritten {
		t.Error("expected first Create to report no overwrite")
	}
	store.AddParticipant(ctx, "dup", "p1")
	store.Deactivate(ctx, "dup")

	store.now = fixedClock(second)
	_, overwritten, _ = store.Create(ctx, domain.NewSession{
		SessionID:   "dup",
		ContentKind: domain.ContentKindQuiz,
		Payload:     json.RawMessage(`["new"]`),
	})
	if !overwritten {
		t.Error("expected second Create to report an overwrite")
	}

	all, _ := store.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected exactly one session, got %d", len(all))
	}

	got := all[0]
	if got.ContentKind != domain.ContentKindQuiz {
		t.Errorf("expected kind quiz, got %s", got.ContentKind)
	}
	if string(got.Payload) != `["new"]` {
		t.Errorf("expected new payload, got %s", got.Payload)
	}
	if !got.CreatedAt.Equal(second) {
		t.Errorf("expected fresh CreatedAt %v, got %v", second, got.CreatedAt)
	}
	if !got.IsActive || len(got.Participants) != 0 {
		t.Error("expected overwritten session to start over, active with no participants")
	}
}

// TestCreateIfAbsentKeepsExistingSession tests the collision-detecting variant
func TestCreateIfAbsentKeepsExistingSession(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)

	_, created, _ := store.CreateIfAbsent(ctx, quizRequest("s1"))
	if !created {
		t.Fatal("expected first CreateIfAbsent to create")
	}

	existing, created, _ := store.CreateIfAbsent(ctx, domain.NewSession{
		SessionID:   "s1",
		ContentKind: domain.ContentKindFlashcards,
	})
	if created {
		t.Error("expected second CreateIfAbsent not to create")
	}
	if existing.ContentKind != domain.ContentKindQuiz {
		t.Errorf("expected original quiz session to be returned, got %s", existing.ContentKind)
	}
}

// TestCreateKeepsDeckMetadata tests optional source deck fields
func TestCreateKeepsDeckMetadata(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)

	req := quizRequest("s1")
	req.SourceDeckName = "cells.pptx"
	req.SourceDeckSessionID = "ppt_42"
	store.Create(ctx, req)

	session, _ := store.Get(ctx, "s1")
	if session.SourceDeckName != "cells.pptx" || session.SourceDeckSessionID != "ppt_42" {
		t.Errorf("expected deck metadata, got %q/%q", session.SourceDeckName, session.SourceDeckSessionID)
	}
}

// ============================================================================
// Participants
// ============================================================================

// TestAddParticipantIsIdempotent tests duplicates are ignored but still succeed
func TestAddParticipantIsIdempotent(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))

	for _, p := range []string{"p1", "p2", "p1", "p3", "p2", "p1"} {
		if ok, _ := store.AddParticipant(ctx, "s1", p); !ok {
			t.Errorf("expected AddParticipant(%s) to return true", p)
		}
	}

	participants, _ := store.ListParticipants(ctx, "s1")
	want := []string{"p1", "p2", "p3"}
	if fmt.Sprint(participants) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, participants)
	}
}

// TestAddParticipantToInactiveSession tests joining does not check activity
func TestAddParticipantToInactiveSession(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))
	store.Deactivate(ctx, "s1")

	if ok, _ := store.AddParticipant(ctx, "s1", "late"); !ok {
		t.Error("expected AddParticipant on inactive session to return true")
	}
}

// TestConcurrentAddParticipant tests that concurrent joins never lose an update
func TestConcurrentAddParticipant(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))

	const students = 50
	var wg sync.WaitGroup
	for i := 0; i < students; i++ {
		for repeat := 0; repeat < 3; repeat++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				store.AddParticipant(ctx, "s1", fmt.Sprintf("p%d", id))
			}(i)
		}
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.Deactivate(ctx, "s1")
		store.Activate(ctx, "s1")
	}()
	wg.Wait()

	participants, _ := store.ListParticipants(ctx, "s1")
	if len(participants) != students {
		t.Fatalf("expected %d distinct participants, got %d", students, len(participants))
	}

	seen := make(map[string]bool)
	for _, p := range participants {
		if seen[p] {
			t.Errorf("duplicate participant %s", p)
		}
		seen[p] = true
	}
}

// TestConcurrentCreateAndJoin tests that re-creating a session while students
// join and the dashboard toggles it stays consistent (run with -race)
func TestConcurrentCreateAndJoin(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s"))

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			created, _, _ := store.Create(ctx, quizRequest("s"))
			if created.SessionID != "s" || created.ContentKind != domain.ContentKindQuiz {
				t.Errorf("unexpected snapshot %+v", created)
			}
		}()
		go func(id int) {
			defer wg.Done()
			store.AddParticipant(ctx, "s", fmt.Sprintf("p%d", id))
			store.Deactivate(ctx, "s")
		}(i)
	}
	wg.Wait()

	session, _ := store.Get(ctx, "s")
	if session == nil {
		t.Fatal("expected session to survive concurrent re-creation")
	}
	if len(session.Participants) > 200 {
		t.Errorf("expected at most 200 participants, got %d", len(session.Participants))
	}
}

// TestListParticipantsReturnsCopy tests callers cannot mutate the roster
func TestListParticipantsReturnsCopy(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))
	store.AddParticipant(ctx, "s1", "p1")

	participants, _ := store.ListParticipants(ctx, "s1")
	participants[0] = "intruder"

	again, _ := store.ListParticipants(ctx, "s1")
	if again[0] != "p1" {
		t.Errorf("expected roster to be unchanged, got %v", again)
	}
}

// ============================================================================
// Access URL invariant
// ============================================================================

// TestGetRepairsStaleAccessURL tests that a stored URL with a wrong suffix is never surfaced
func TestGetRepairsStaleAccessURL(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))

	// Store directly in the map to bypass Create's derivation
	store.sessions["s1"].AccessURL = testBaseURL + "/student/s1"
	store.sessions["legacy"] = &domain.StudySession{
		SessionID:   "legacy",
		ContentKind: domain.ContentKindFlashcards,
		AccessURL:   "http://old-host/student/legacy/quiz",
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	session, _ := store.Get(ctx, "s1")
	if !session.HasConsistentAccessURL() {
		t.Errorf("expected repaired URL, got %s", session.AccessURL)
	}

	all, _ := store.ListAll(ctx)
	for _, s := range all {
		if !strings.HasSuffix(s.AccessURL, "/"+s.SessionID+"/"+string(s.ContentKind)) {
			t.Errorf("ListAll surfaced stale URL %s", s.AccessURL)
		}
	}
}

// ============================================================================
// Activation
// ============================================================================

// TestActivationTransitionsAreIdempotent tests repeated toggles
func TestActivationTransitionsAreIdempotent(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))

	for i := 0; i < 2; i++ {
		ok, _ := store.Deactivate(ctx, "s1")
		session, _ := store.Get(ctx, "s1")
		if !ok || session.IsActive {
			t.Errorf("Deactivate #%d: expected true and inactive, got %v/%v", i+1, ok, session.IsActive)
		}
	}

	for i := 0; i < 2; i++ {
		ok, _ := store.Activate(ctx, "s1")
		session, _ := store.Get(ctx, "s1")
		if !ok || !session.IsActive {
			t.Errorf("Activate #%d: expected true and active, got %v/%v", i+1, ok, session.IsActive)
		}
	}
}

// TestDeactivateKeepsParticipantHistory tests deactivation is not deletion
func TestDeactivateKeepsParticipantHistory(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))
	store.AddParticipant(ctx, "s1", "p1")
	store.Deactivate(ctx, "s1")
	store.Activate(ctx, "s1")

	participants, _ := store.ListParticipants(ctx, "s1")
	if len(participants) != 1 {
		t.Errorf("expected participant history to survive, got %v", participants)
	}
}

// ============================================================================
// Unknown ids
// ============================================================================

// TestUnknownSessionOperations tests not-found outcomes leave the registry untouched
func TestUnknownSessionOperations(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))

	if session, err := store.Get(ctx, "ghost"); session != nil || err != nil {
		t.Errorf("expected nil, nil for unknown Get, got %v, %v", session, err)
	}
	if ok, _ := store.AddParticipant(ctx, "ghost", "p1"); ok {
		t.Error("expected AddParticipant on unknown id to return false")
	}
	if ok, _ := store.Deactivate(ctx, "ghost"); ok {
		t.Error("expected Deactivate on unknown id to return false")
	}
	if ok, _ := store.Activate(ctx, "ghost"); ok {
		t.Error("expected Activate on unknown id to return false")
	}
	if ok, _ := store.Delete(ctx, "ghost"); ok {
		t.Error("expected Delete on unknown id to return false")
	}
	if participants, _ := store.ListParticipants(ctx, "ghost"); participants == nil || len(participants) != 0 {
		t.Errorf("expected empty non-nil roster, got %v", participants)
	}

	all, _ := store.ListAll(ctx)
	if len(all) != 1 || all[0].SessionID != "s1" {
		t.Errorf("expected registry to be unchanged, got %v", all)
	}
	if _, ok := store.sessions["ghost"]; ok {
		t.Error("expected no record to be created for unknown id")
	}
}

// ============================================================================
// Listing and expiry
// ============================================================================

// TestListActiveFiltersInactiveSessions tests the two listing variants
func TestListActiveFiltersInactiveSessions(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		store.now = fixedClock(base.Add(time.Duration(i) * time.Minute))
		store.Create(ctx, quizRequest(id))
	}
	store.Deactivate(ctx, "a")

	all, _ := store.ListAll(ctx)
	var ids []string
	for _, s := range all {
		ids = append(ids, s.SessionID)
	}
	if fmt.Sprint(ids) != "[c a b]" {
		t.Errorf("expected creation order [c a b], got %v", ids)
	}

	active, _ := store.ListActive(ctx)
	if len(active) != 2 {
		t.Fatalf("expected 2 active sessions, got %d", len(active))
	}
	for _, s := range active {
		if s.SessionID == "a" {
			t.Error("expected inactive session a to be filtered")
		}
	}
}

// TestSweepExpiredRemovesOldSessions tests the 24h retention boundary
func TestSweepExpiredRemovesOldSessions(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	now := time.Now()

	store.now = fixedClock(now.Add(-25 * time.Hour))
	store.Create(ctx, quizRequest("old"))
	store.now = fixedClock(now.Add(-23 * time.Hour))
	store.Create(ctx, quizRequest("recent"))

	removed, err := store.SweepExpired(ctx, domain.RetentionCutoff(now, domain.DefaultRetention))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed session, got %d", removed)
	}

	all, _ := store.ListAll(ctx)
	if len(all) != 1 || all[0].SessionID != "recent" {
		t.Errorf("expected only recent to survive, got %v", all)
	}
}

// TestSweepExpiredOnEmptyStore tests the sweep is silent when nothing is stored
func TestSweepExpiredOnEmptyStore(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)

	removed, err := store.SweepExpired(ctx, time.Now())
	if err != nil || removed != 0 {
		t.Errorf("expected 0, nil, got %d, %v", removed, err)
	}
}

// TestGetReturnsDetachedCopy tests that callers cannot mutate stored state
func TestGetReturnsDetachedCopy(t *testing.T) {
	store := NewMemorySessionStore(testBaseURL)
	store.Create(ctx, quizRequest("s1"))

	session, _ := store.Get(ctx, "s1")
	session.IsActive = false
	session.Participants = append(session.Participants, "sneaky")

	again, _ := store.Get(ctx, "s1")
	if !again.IsActive || len(again.Participants) != 0 {
		t.Error("expected stored session to be unaffected by caller mutation")
	}
}
