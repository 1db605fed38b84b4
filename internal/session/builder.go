package session

import (
	"sort"
	"strings"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

// Build partitions a batch of events by user identity and delimits each
// user's non-overlapping debug-session windows. Events without a resolvable
// user identity are discarded. The returned sessions carry identity, time
// boundaries and their event subsets only; counters are left to Interpret.
//
// Output order is deterministic: users in first-appearance order, sessions
// per user in start-timestamp order.
func Build(events []domain.Event, opts Options) []*domain.DebugSession {
	byUser := make(map[string][]domain.Event)
	var users []string
	for _, ev := range events {
		uid := ev.UserID()
		if uid == "" {
			continue
		}
		if _, seen := byUser[uid]; !seen {
			users = append(users, uid)
		}
		byUser[uid] = append(byUser[uid], ev)
	}

	var sessions []*domain.DebugSession
	for _, uid := range users {
		evs := byUser[uid]
		// Stable: ties keep original relative order, there is no
		// secondary ordering key.
		sort.SliceStable(evs, func(i, j int) bool {
			return evs[i].Timestamp < evs[j].Timestamp
		})
		sessions = append(sessions, buildForUser(uid, evs, opts)...)
	}
	return sessions
}

// buildForUser scans one user's chronologically sorted events and pairs each
// adapter-initialization marker with its end boundary.
func buildForUser(uid string, evs []domain.Event, opts Options) []*domain.DebugSession {
	var inits, stops []domain.Event
	for _, ev := range evs {
		switch {
		case ev.Service() == opts.AdapterService && strings.HasPrefix(ev.Body, InitBodyPrefix):
			inits = append(inits, ev)
		case ev.Service() == opts.ExtensionService && ev.Body == StoppedBody:
			stops = append(stops, ev)
		case ev.Service() == opts.ServerService && ev.Body == ServerStoppedBody:
			stops = append(stops, ev)
		}
	}

	scan := &stopScan{stops: stops}
	sessions := make([]*domain.DebugSession, 0, len(inits))
	for i, init := range inits {
		initTS := init.Timestamp

		var nextInitTS int64
		hasNextInit := i+1 < len(inits)
		if hasNextInit {
			nextInitTS = inits[i+1].Timestamp
		}
		stopTS, hasStop := scan.next(initTS)

		var endTS int64
		var open, superseded bool
		switch {
		case hasStop && (!hasNextInit || stopTS <= nextInitTS):
			// Tie with the next init goes to the stop marker:
			// the session ends by stop, not superseded.
			endTS = stopTS
			scan.consume()
		case hasNextInit:
			endTS = nextInitTS
			superseded = true
		default:
			// No terminator observed anywhere; close at the
			// user's last event and flag for the reporter.
			endTS = evs[len(evs)-1].Timestamp
			open = true
		}

		sess := domain.NewDebugSession(uid, init.SessionID(), initTS, endTS)
		sess.Open = open
		for _, ev := range evs {
			if ev.Timestamp < initTS || ev.Timestamp > endTS {
				continue
			}
			// A session superseded by the next init does not own the
			// boundary instant: that event opens the next session.
			// Keeps per-user event attachment disjoint.
			if superseded && ev.Timestamp == endTS {
				continue
			}
			sess.Events = append(sess.Events, ev)
		}
		sessions = append(sessions, sess)
	}
	return sessions
}

// stopScan is a monotonic forward scan over a user's timestamp-ordered stop
// markers. Each marker is handed out as an end boundary at most once, and
// the position never rewinds, making init/stop pairing a single merge over
// two sorted lists.
type stopScan struct {
	stops []domain.Event
	idx   int
}

// next returns the timestamp of the earliest unconsumed stop marker strictly
// after initTS. Markers at or before initTS belong to an earlier window and
// are skipped permanently. ok is false when no marker remains.
func (s *stopScan) next(initTS int64) (ts int64, ok bool) {
	for s.idx < len(s.stops) {
		if s.stops[s.idx].Timestamp > initTS {
			return s.stops[s.idx].Timestamp, true
		}
		s.idx++
	}
	return 0, false
}

// consume advances past the marker last returned by next, marking it used
// as an end boundary.
func (s *stopScan) consume() {
	if s.idx < len(s.stops) {
		s.idx++
	}
}
