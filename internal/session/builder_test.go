package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

func ev(ts int64, uid, svc, body string) domain.Event {
	return domain.Event{
		Timestamp: ts,
		Body:      body,
		Resources: map[string]string{
			domain.ResourceUserID:      uid,
			domain.ResourceServiceName: svc,
		},
	}
}

func initEv(ts int64, uid, sid string) domain.Event {
	e := ev(ts, uid, domain.ServiceAdapter, InitBodyPrefix+" endpoint=localhost:5000")
	e.Resources[domain.ResourceSessionID] = sid
	return e
}

func stopEv(ts int64, uid string) domain.Event {
	return ev(ts, uid, domain.ServiceExtension, StoppedBody)
}

func serverStopEv(ts int64, uid string) domain.Event {
	return ev(ts, uid, domain.ServiceServer, ServerStoppedBody)
}

func actEv(ts int64, uid, svc, activity string) domain.Event {
	return ev(ts, uid, svc, "[activity] "+activity)
}

func TestBuildSingleSession(t *testing.T) {
	events := []domain.Event{
		initEv(100, "u1", "s1"),
		actEv(150, "u1", domain.ServiceAdapter, "step_over thread=1"),
		stopEv(200, "u1"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "s1", s.SessionID)
	assert.Equal(t, int64(100), s.StartTS)
	assert.Equal(t, int64(200), s.EndTS)
	assert.False(t, s.Open)
	// Boundary markers are included in the attached subset.
	assert.Len(t, s.Events, 3)
}

func TestBuildConsecutiveInitsWithoutStop(t *testing.T) {
	// Two inits, no stop between them: the first window ends exactly at
	// the second init, the second stays open until the last event.
	events := []domain.Event{
		initEv(100, "u1", "s1"),
		actEv(150, "u1", domain.ServiceAdapter, "set_breakpoints file=a.c"),
		initEv(300, "u1", "s2"),
		actEv(400, "u1", domain.ServiceAdapter, "step_over thread=1"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 2)

	assert.Equal(t, int64(100), sessions[0].StartTS)
	assert.Equal(t, int64(300), sessions[0].EndTS)
	assert.False(t, sessions[0].Open)

	assert.Equal(t, int64(300), sessions[1].StartTS)
	assert.Equal(t, int64(400), sessions[1].EndTS)
	assert.True(t, sessions[1].Open)

	// The second init event belongs to the second session only.
	assert.Len(t, sessions[0].Events, 2)
	assert.Len(t, sessions[1].Events, 2)
}

func TestBuildStopTiedWithNextInit(t *testing.T) {
	// A stop marker at the exact timestamp of the next init is preferred
	// as the boundary and consumed; it is not reused afterwards.
	events := []domain.Event{
		initEv(100, "u1", "s1"),
		stopEv(300, "u1"),
		initEv(300, "u1", "s2"),
		actEv(350, "u1", domain.ServiceAdapter, "step_in thread=1"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 2)

	assert.Equal(t, int64(300), sessions[0].EndTS)
	assert.False(t, sessions[0].Open)

	// The consumed stop cannot terminate the second session.
	assert.Equal(t, int64(350), sessions[1].EndTS)
	assert.True(t, sessions[1].Open)
}

func TestBuildSkipsStopsBeforeFirstInit(t *testing.T) {
	events := []domain.Event{
		stopEv(10, "u1"),
		stopEv(20, "u1"),
		initEv(100, "u1", "s1"),
		stopEv(200, "u1"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(200), sessions[0].EndTS)
}

func TestBuildServerStopTerminates(t *testing.T) {
	events := []domain.Event{
		initEv(100, "u1", "s1"),
		serverStopEv(250, "u1"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(250), sessions[0].EndTS)
	assert.False(t, sessions[0].Open)
}

func TestBuildNoInitNoSessions(t *testing.T) {
	events := []domain.Event{
		stopEv(100, "u1"),
		actEv(150, "u1", domain.ServiceAdapter, "step_over thread=1"),
	}
	assert.Empty(t, Build(events, DefaultOptions()))
}

func TestBuildDropsEventsWithoutUser(t *testing.T) {
	noUser := domain.Event{
		Timestamp: 100,
		Body:      InitBodyPrefix,
		Resources: map[string]string{domain.ResourceServiceName: domain.ServiceAdapter},
	}
	assert.Empty(t, Build([]domain.Event{noUser}, DefaultOptions()))
}

func TestBuildPartitionsByUser(t *testing.T) {
	events := []domain.Event{
		initEv(100, "u1", "s1"),
		initEv(120, "u2", "s2"),
		stopEv(200, "u1"),
		stopEv(220, "u2"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 2)
	assert.Equal(t, "u1", sessions[0].UserID)
	assert.Equal(t, int64(200), sessions[0].EndTS)
	assert.Equal(t, "u2", sessions[1].UserID)
	assert.Equal(t, int64(220), sessions[1].EndTS)
}

func TestBuildUnsortedInput(t *testing.T) {
	events := []domain.Event{
		stopEv(200, "u1"),
		actEv(150, "u1", domain.ServiceAdapter, "step_over thread=1"),
		initEv(100, "u1", "s1"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(100), sessions[0].StartTS)
	assert.Equal(t, int64(200), sessions[0].EndTS)
}

func TestBuildEventAttachmentDisjoint(t *testing.T) {
	events := []domain.Event{
		initEv(100, "u1", "s1"),
		actEv(150, "u1", domain.ServiceAdapter, "step_over thread=1"),
		stopEv(200, "u1"),
		actEv(250, "u1", domain.ServiceAdapter, "evaluate expr=x"),
		initEv(300, "u1", "s2"),
		actEv(350, "u1", domain.ServiceAdapter, "step_in thread=1"),
		initEv(400, "u1", "s3"),
		stopEv(500, "u1"),
	}

	sessions := Build(events, DefaultOptions())
	require.Len(t, sessions, 3)

	seen := make(map[int64]int)
	for _, s := range sessions {
		assert.LessOrEqual(t, s.StartTS, s.EndTS)
		for _, ev := range s.Events {
			seen[ev.Timestamp]++
			assert.GreaterOrEqual(t, ev.Timestamp, s.StartTS)
			assert.LessOrEqual(t, ev.Timestamp, s.EndTS)
		}
	}
	for ts, count := range seen {
		assert.Equal(t, 1, count, "event at %d attached to %d sessions", ts, count)
	}
}

func TestStopScan(t *testing.T) {
	scan := &stopScan{stops: []domain.Event{
		stopEv(100, "u"),
		stopEv(200, "u"),
		stopEv(300, "u"),
	}}

	// Markers at or before the init are skipped permanently.
	ts, ok := scan.next(100)
	require.True(t, ok)
	assert.Equal(t, int64(200), ts)
	scan.consume()

	// Scan position never rewinds: the 100 marker is gone for good.
	ts, ok = scan.next(50)
	require.True(t, ok)
	assert.Equal(t, int64(300), ts)
	scan.consume()

	_, ok = scan.next(0)
	assert.False(t, ok)
}

func TestStopScanNextWithoutConsumeIsStable(t *testing.T) {
	scan := &stopScan{stops: []domain.Event{stopEv(100, "u")}}

	ts, ok := scan.next(50)
	require.True(t, ok)
	assert.Equal(t, int64(100), ts)

	// next alone does not advance.
	ts, ok = scan.next(50)
	require.True(t, ok)
	assert.Equal(t, int64(100), ts)
}
