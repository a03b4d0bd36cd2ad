package store

// Keys names the storage slots. The defaults match the keys the web client
// has always used, so existing browser data reads back unchanged.
type Keys struct {
	User        string
	Problems    string
	Solutions   string
	Connections string
	Locale      string
}

// DefaultKeys are the slot names used unless WithKeys overrides them.
var DefaultKeys = Keys{
	User:        "ideabridge_user",
	Problems:    "ideabridge_problems",
	Solutions:   "ideabridge_solutions",
	Connections: "ideabridge_connections",
	Locale:      "ideabridge-locale",
}
