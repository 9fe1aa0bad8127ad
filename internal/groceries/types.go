package groceries

// List describes one remote grocery list
type List struct {
	// ListUUID is the stable identifier of the list
	ListUUID string `json:"listUuid"`

	// Name is the user-visible list name
	Name string `json:"name"`

	// Theme is the display theme configured for the list
	Theme string `json:"theme,omitempty"`
}

// ListsResponse is the response of the list enumeration endpoint
type ListsResponse struct {
	Lists []List `json:"lists"`
}

// Item is a single entry on a grocery list
type Item struct {
	// Name is the article name
	Name string `json:"name"`

	// Specification is the free-form detail text (amount, brand, ...)
	Specification string `json:"specification,omitempty"`
}

// ItemsResponse is the full content of one grocery list
type ItemsResponse struct {
	// UUID is the list identifier the content belongs to
	UUID string `json:"uuid"`

	// Status indicates whether the list is shared or private
	Status string `json:"status,omitempty"`

	// Purchase holds the open items still to buy
	Purchase []Item `json:"purchase"`

	// Recently holds items checked off recently
	Recently []Item `json:"recently,omitempty"`
}

// Setting is a single key/value user preference
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ListSetting holds per-list user preferences
type ListSetting struct {
	ListUUID string    `json:"listUuid"`
	Settings []Setting `json:"usersettings"`
}

// UserSettings is the response of the user settings endpoint
type UserSettings struct {
	Settings     []Setting     `json:"usersettings"`
	ListSettings []ListSetting `json:"userlistsettings"`
}
