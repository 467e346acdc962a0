package output

// Row is one listed workspace object.
type Row struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// SharedCounts summarizes an unfiltered workspace dump.
type SharedCounts struct {
	Pages       int `json:"pages"`
	DataSources int `json:"data_sources"`
	Other       int `json:"other"`
}

// Resolution is the outcome of resolving an identifier to its title.
type Resolution struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Expected string `json:"expected,omitempty"`
	Match    *bool  `json:"match,omitempty"`
}

// CompareReport cross-references an Evernote export against a Notion data
// source by exact title match.
type CompareReport struct {
	EnexFile            string   `json:"enex_file"`
	DataSource          string   `json:"data_source"`
	EnexTotal           int      `json:"enex_total"`
	NotionTotal         int      `json:"notion_total"`
	Matched             int      `json:"matched"`
	MissingFromNotion   []string `json:"missing_from_notion"`
	MissingFromEvernote []string `json:"missing_from_evernote"`
	EmptyEnexTitles     int      `json:"empty_enex_titles"`
	EmptyNotionTitles   int      `json:"empty_notion_titles"`
}
