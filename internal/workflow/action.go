package workflow

// ActionKind discriminates which external data provider a run queries.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionWeather
	ActionGithub
	ActionNews
)

// Action is the parsed form of the request's action string. Raw always keeps
// the original input so unknown actions can be echoed back verbatim.
type Action struct {
	Kind ActionKind
	Raw  string
}

// ParseAction maps the wire-level action string onto a closed ActionKind.
// Unrecognized values parse to ActionUnknown rather than failing; the
// dispatcher turns those into a descriptive no-op result.
func ParseAction(raw string) Action {
	switch raw {
	case "weather":
		return Action{Kind: ActionWeather, Raw: raw}
	case "github":
		return Action{Kind: ActionGithub, Raw: raw}
	case "news":
		return Action{Kind: ActionNews, Raw: raw}
	default:
		return Action{Kind: ActionUnknown, Raw: raw}
	}
}

// Hashtag returns the fixed tag appended to every composed result.
// Anything that is not weather or github tags as #news, unknown included.
func (a Action) Hashtag() string {
	switch a.Kind {
	case ActionWeather:
		return "#weather"
	case ActionGithub:
		return "#opensource"
	default:
		return "#news"
	}
}

// String returns one of the four closed kind names. Raw input never leaks
// through here, so the value is safe as a metric label.
func (a Action) String() string {
	switch a.Kind {
	case ActionWeather:
		return "weather"
	case ActionGithub:
		return "github"
	case ActionNews:
		return "news"
	default:
		return "unknown"
	}
}
