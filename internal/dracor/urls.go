package dracor

import (
	"fmt"
	"net/url"
)

const (
	switchboardBaseURL = "https://switchboard.clarin.eu/#/vlo/"
	voyantBaseURL      = "https://voyant-tools.org/?input="
	gephiLiteBaseURL   = "https://gephi.org/gephi-lite/?file="
)

// PlayLinks collects the frontend tab, external tool and download URLs of
// a single play, mirroring the frontend's Download and Tools tabs.
type PlayLinks struct {
	FrontendNetworkTab            string `json:"frontend_network_tab"`
	FrontendSpeechDistributionTab string `json:"frontend_speech_distribution_tab"`
	FrontendFulltextTab           string `json:"frontend_fulltext_tab"`
	FrontendDownloadTab           string `json:"frontend_download_tab"`
	FrontendToolsTab              string `json:"frontend_tools_tab"`

	SwitchboardTEI             string `json:"frontend_tools_tab_to_clarin_language_switchboard_tei_file"`
	SwitchboardPlaintext       string `json:"frontend_tools_tab_to_clarin_language_switchboard_plaintext_file"`
	SwitchboardSpokenText      string `json:"frontend_tools_tab_to_clarin_language_switchboard_spoken-text_file"`
	SwitchboardStageDirections string `json:"frontend_tools_tab_to_clarin_language_switchboard_stage-directions_file"`

	VoyantTEI             string `json:"frontend_tools_tab_to_voyant_tool_tei_file"`
	VoyantPlaintext       string `json:"frontend_tools_tab_to_voyant_tool_plaintext_file"`
	VoyantSpokenText      string `json:"frontend_tools_tab_to_voyant_tool_spoken-text_file"`
	VoyantStageDirections string `json:"frontend_tools_tab_to_voyant_tool_stage-directions_file"`

	GephiLite string `json:"frontend_tools_tab_to_gephi"`

	NetworkGEXF     string `json:"download_network_data_as_gexf"`
	NetworkGraphML  string `json:"download_network_data_as_graphml"`
	RelationGEXF    string `json:"download_character_relation_data_as_gexf"`
	RelationGraphML string `json:"download_character_relation_data_as_graphml"`
}

// PlayLinks builds the frontend, external tool and download links of a
// play. External tools receive the play's API URL percent-encoded as a
// single value.
func (c *Client) PlayLinks(corpus, play string) PlayLinks {
	playPage := fmt.Sprintf("%s/%s/%s", c.frontendURL, corpus, play)
	playAPI := c.PlayAPIURL(corpus, play)
	quoted := url.QueryEscape(playAPI)

	return PlayLinks{
		FrontendNetworkTab:            playPage,
		FrontendSpeechDistributionTab: playPage + "#speech",
		FrontendFulltextTab:           playPage + "#text",
		FrontendDownloadTab:           playPage + "#downloads",
		FrontendToolsTab:              playPage + "#tools",

		SwitchboardTEI:             switchboardBaseURL + quoted + "tei",
		SwitchboardPlaintext:       switchboardBaseURL + quoted + "txt",
		SwitchboardSpokenText:      switchboardBaseURL + quoted + "spoken-text",
		SwitchboardStageDirections: switchboardBaseURL + quoted + "stage-directions",

		VoyantTEI:             voyantBaseURL + quoted + "tei",
		VoyantPlaintext:       voyantBaseURL + quoted + "txt",
		VoyantSpokenText:      voyantBaseURL + quoted + "spoken-text",
		VoyantStageDirections: voyantBaseURL + quoted + "stage-directions",

		GephiLite: gephiLiteBaseURL + quoted + "networkdata/gexf",

		NetworkGEXF:     playAPI + "networkdata/gexf",
		NetworkGraphML:  playAPI + "networkdata/graphml",
		RelationGEXF:    playAPI + "relations/gexf",
		RelationGraphML: playAPI + "relations/graphml",
	}
}
