package wiki

// PersonInfo is a resolved, human-verified encyclopedia entry.
type PersonInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Extract     string `json:"extract,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	WikidataQID string `json:"wikidata_qid,omitempty"`
	URL         string `json:"url,omitempty"`
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type summaryResponse struct {
	Description  string `json:"description"`
	Extract      string `json:"extract"`
	WikibaseItem string `json:"wikibase_item"`
	Thumbnail    struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

type entityResponse struct {
	Entities map[string]struct {
		Claims map[string][]claim `json:"claims"`
	} `json:"entities"`
}

type claim struct {
	Mainsnak struct {
		Datavalue struct {
			Value struct {
				ID string `json:"id"`
			} `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}
