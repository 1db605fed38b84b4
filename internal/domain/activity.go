package domain

import "strings"

// activityTag marks log bodies carrying a structured activity record.
const activityTag = "[activity]"

// SentinelUndefined is the literal the front-end emits for a missing
// debuggee-session reference. It never counts as a viewed session.
const SentinelUndefined = "undefined"

// Activity is the structured sub-format embedded in a log body: an action
// token followed by whitespace-separated key=value parameters.
type Activity struct {
	Action string
	Params map[string]string
}

// Param returns the named parameter, or "" when absent or malformed.
func (a Activity) Param(key string) string { return a.Params[key] }

// ParseActivity extracts an activity record from a log body. The second
// return value is false when the body does not carry one (wrong tag, or no
// action token). Malformed key=value fragments are silently omitted from
// the parameter map; they never fail the parse.
func ParseActivity(body string) (Activity, bool) {
	rest, ok := strings.CutPrefix(body, activityTag)
	if !ok {
		return Activity{}, false
	}
	// The tag must be followed by whitespace before the action token.
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return Activity{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Activity{}, false
	}

	act := Activity{Action: fields[0], Params: make(map[string]string)}
	for _, kv := range fields[1:] {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" || value == "" {
			continue
		}
		act.Params[key] = value
	}
	return act, true
}
