package console

// PageID identifies a navigable console section. The set is closed:
// permission maps are validated against it at the API boundary.
type PageID string

const (
	PageDashboard        PageID = "dashboard"
	PageUsers            PageID = "users"
	PageEvents           PageID = "events"
	PageParties          PageID = "parties"
	PageLanguageSettings PageID = "language-settings"
)

// PageDescriptor is a static catalog entry describing a navigable
// application section. Titles resolve through the Translator so the
// menu follows the active language.
type PageDescriptor struct {
	ID       PageID `json:"id"`
	TitleKey string `json:"title_key"`
	Route    string `json:"route"`
	Icon     string `json:"icon"`
}

// Title resolves the localized page title. Without a translator the
// raw key is returned.
func (p PageDescriptor) Title(tr *Translator) string {
	if tr == nil {
		return p.TitleKey
	}
	return tr.T(p.TitleKey)
}

// DefaultPages returns the page catalog in navigation order.
func DefaultPages() []PageDescriptor {
	return []PageDescriptor{
		{ID: PageDashboard, TitleKey: "dashboard", Route: "/dashboard", Icon: "LayoutDashboard"},
		{ID: PageUsers, TitleKey: "users", Route: "/users", Icon: "Users"},
		{ID: PageEvents, TitleKey: "events", Route: "/events", Icon: "Calendar"},
		{ID: PageParties, TitleKey: "parties", Route: "/parties", Icon: "PartyPopper"},
		{ID: PageLanguageSettings, TitleKey: "languageSettings", Route: "/language-settings", Icon: "Languages"},
	}
}

// AllPageIDs returns every catalog page id in navigation order.
func AllPageIDs() []PageID {
	pages := DefaultPages()
	ids := make([]PageID, 0, len(pages))
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	return ids
}

// ParsePageID safely parses a string into a PageID.
func ParsePageID(s string) (PageID, bool) {
	id := PageID(s)
	switch id {
	case PageDashboard, PageUsers, PageEvents, PageParties, PageLanguageSettings:
		return id, true
	default:
		return "", false
	}
}
