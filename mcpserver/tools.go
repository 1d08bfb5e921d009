package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wordnet-dk/dannet-mcp/config"
	"github.com/wordnet-dk/dannet-mcp/dannet"
	"github.com/wordnet-dk/dannet-mcp/ddo"
	"github.com/wordnet-dk/dannet-mcp/internal/httpclient"
)

// probeTimeout bounds the connectivity check in the server-switching tools.
const probeTimeout = 5 * time.Second

func (s *Server) registerTools() {
	searchTool := mcp.NewTool("get_word_synsets",
		mcp.WithDescription("Search DanNet for the synsets (word meanings) of a Danish word. "+
			"Multiple matches return a list of summaries with synset_id, label and definition; "+
			"an unambiguous match returns the full synset record directly."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The Danish word or phrase to search for"),
		),
		mcp.WithString("language",
			mcp.Description("Language for labels and definitions in results (default: da)"),
		),
	)
	s.mcp.AddTool(searchTool, s.handleGetWordSynsets)

	entityTool := mcp.NewTool("get_entity_info",
		mcp.WithDescription("Get complete RDF data for any DanNet entity or external vocabulary entity. "+
			"Synsets, words and senses live in the default dn namespace; classes like "+
			"ontolex:LexicalConcept live in external namespaces."),
		mcp.WithString("identifier",
			mcp.Required(),
			mcp.Description("Entity identifier, e.g. synset-3047, word-11021628 or LexicalConcept"),
		),
		mcp.WithString("namespace",
			mcp.Description("Namespace of the entity: dn (default), ontolex, ili, lexinfo, ..."),
		),
	)
	s.mcp.AddTool(entityTool, s.handleGetEntityInfo)

	synsetTool := mcp.NewTool("get_synset_info",
		mcp.WithDescription("Get comprehensive RDF data for a DanNet synset: taxonomic relations "+
			"(wn:hypernym, wn:hyponym), ontological types, sentiment, definitions and evoking words."),
		mcp.WithString("synset_id",
			mcp.Required(),
			mcp.Description("Synset identifier, e.g. synset-3047 or just 3047"),
		),
	)
	s.mcp.AddTool(synsetTool, s.handleGetSynsetInfo)

	wordTool := mcp.NewTool("get_word_info",
		mcp.WithDescription("Get RDF data for a DanNet word (lexical entry): written form, "+
			"part of speech and the synsets the word evokes."),
		mcp.WithString("word_id",
			mcp.Required(),
			mcp.Description("Word identifier, e.g. word-11021628 or just 11021628"),
		),
	)
	s.mcp.AddTool(wordTool, s.handleGetWordInfo)

	senseTool := mcp.NewTool("get_sense_info",
		mcp.WithDescription("Get RDF data for a DanNet sense, the link between one word and one synset: "+
			"usage examples, register and the DDO source URL."),
		mcp.WithString("sense_id",
			mcp.Required(),
			mcp.Description("Sense identifier, e.g. sense-21033604 or just 21033604"),
		),
	)
	s.mcp.AddTool(senseTool, s.handleGetSenseInfo)

	synonymsTool := mcp.NewTool("get_word_synonyms",
		mcp.WithDescription("Find synonyms for a Danish word through shared synsets. "+
			"Returns a comma-separated list of alternative words with the same meanings."),
		mcp.WithString("word",
			mcp.Required(),
			mcp.Description("The Danish word to find synonyms for"),
		),
	)
	s.mcp.AddTool(synonymsTool, s.handleGetWordSynonyms)

	autocompleteTool := mcp.NewTool("autocomplete_danish_word",
		mcp.WithDescription("Get autocomplete suggestions for a Danish word prefix. "+
			"Returns lemma forms in alphabetical order; requires at least 3 characters."),
		mcp.WithString("prefix",
			mcp.Required(),
			mcp.Description("The beginning of a Danish word (minimum 3 characters)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of suggestions to return (default: 10)"),
		),
	)
	s.mcp.AddTool(autocompleteTool, s.handleAutocomplete)

	switchTool := mcp.NewTool("switch_dannet_server",
		mcp.WithDescription("Switch between local and remote DanNet servers at runtime. "+
			"Accepts 'local' (localhost:3456), 'remote' (wordnet.dk) or a custom URL."),
		mcp.WithString("server",
			mcp.Required(),
			mcp.Description("Server to switch to: 'local', 'remote' or an http(s) URL"),
		),
	)
	s.mcp.AddTool(switchTool, s.handleSwitchServer)

	currentTool := mcp.NewTool("get_current_dannet_server",
		mcp.WithDescription("Show which DanNet server is currently active and whether it responds."),
	)
	s.mcp.AddTool(currentTool, s.handleCurrentServer)

	ddoTool := mcp.NewTool("fetch_ddo_definition",
		mcp.WithDescription("Fetch the full, untruncated definition for a synset from "+
			"Den Danske Ordbog (ordnet.dk) by following the sense source URLs. "+
			"DanNet definitions are capped in length; this recovers the complete text."),
		mcp.WithString("synset_id",
			mcp.Required(),
			mcp.Description("Synset identifier, e.g. synset-3047 or just 3047"),
		),
	)
	s.mcp.AddTool(ddoTool, s.handleFetchDDODefinition)
}

// jsonResult marshals v as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetWordSynsets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language := request.GetString("language", "da")

	body, err := s.dannet().Search(ctx, query, language)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	switch normalized := dannet.NormalizeSearch(body, query, language); normalized.Kind {
	case dannet.KindEntity:
		return jsonResult(normalized.Entity)
	case dannet.KindSummaries:
		return jsonResult(normalized.Summaries)
	default:
		return jsonResult([]dannet.SearchResult{})
	}
}

func (s *Server) handleGetEntityInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier, err := request.RequireString("identifier")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	namespace := request.GetString("namespace", "dn")

	var record map[string]any
	if namespace == "dn" {
		record, err = s.dannet().Resource(ctx, dannet.ResourceID(identifier))
	} else {
		record, err = s.dannet().External(ctx, namespace, identifier)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get entity info: %v", err)), nil
	}

	result := dannet.NormalizeEntity(record)
	if namespace == "dn" {
		result["resource_id"] = dannet.ResourceID(identifier)
	} else {
		result["resource_id"] = namespace + "/" + identifier
	}
	return jsonResult(result)
}

func (s *Server) handleGetSynsetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	synsetID, err := request.RequireString("synset_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cleanID := dannet.CleanID(synsetID, "synset")
	record, err := s.dannet().Resource(ctx, cleanID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get synset info: %v", err)), nil
	}

	result := dannet.NormalizeEntity(record)
	result["synset_id"] = cleanID
	return jsonResult(result)
}

func (s *Server) handleGetWordInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wordID, err := request.RequireString("word_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cleanID := dannet.CleanID(wordID, "word")
	record, err := s.dannet().Resource(ctx, cleanID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get word info: %v", err)), nil
	}

	result := dannet.NormalizeEntity(record)
	result["word_id"] = cleanID
	return jsonResult(result)
}

func (s *Server) handleGetSenseInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	senseID, err := request.RequireString("sense_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cleanID := dannet.CleanID(senseID, "sense")
	record, err := s.dannet().Resource(ctx, cleanID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get sense info: %v", err)), nil
	}

	result := dannet.NormalizeEntity(record)
	result["sense_id"] = cleanID
	return jsonResult(result)
}

func (s *Server) handleGetWordSynonyms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := request.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	synonyms, err := s.dannet().Synonyms(ctx, word)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to find synonyms: %v", err)), nil
	}
	if synonyms == "" {
		return mcp.NewToolResultText(fmt.Sprintf("No synonyms found for '%s'", word)), nil
	}
	return mcp.NewToolResultText(synonyms), nil
}

func (s *Server) handleAutocomplete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix, err := request.RequireString("prefix")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxResults := request.GetInt("max_results", 10)

	completions := s.dannet().Autocomplete(ctx, prefix)
	sort.Strings(completions)
	if maxResults > 0 && len(completions) > maxResults {
		completions = completions[:maxResults]
	}
	return mcp.NewToolResultText(strings.Join(completions, ", ")), nil
}

func (s *Server) handleSwitchServer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := request.RequireString("server")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	previousURL := s.dannet().BaseURL()

	var newURL string
	switch {
	case strings.EqualFold(target, "local"):
		newURL = config.LocalURL
	case strings.EqualFold(target, "remote"):
		newURL = config.RemoteURL
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
		newURL = target
	default:
		return jsonResult(map[string]string{
			"status":       "error",
			"message":      fmt.Sprintf("Invalid server specification: %q. Use 'local', 'remote', or a valid URL.", target),
			"previous_url": previousURL,
			"current_url":  previousURL,
		})
	}

	client := dannet.NewClient(newURL, s.opts)

	// Best-effort connectivity check. The API may still work even when the
	// root endpoint does not, so a failed probe only warns.
	if status, probeErr := probe(ctx, newURL); probeErr != nil {
		s.logger.Warnw("Could not verify connectivity to new server",
			"url", newURL, "error", probeErr)
	} else if status >= 500 {
		s.logger.Warnw("New server responded with server error, continuing anyway",
			"url", newURL, "status", status)
	}

	s.client.Store(client)
	s.logger.Infow("Switched DanNet server", "previous_url", previousURL, "current_url", newURL)

	return jsonResult(map[string]string{
		"status":       "success",
		"message":      fmt.Sprintf("Successfully switched DanNet server from %s to %s", previousURL, newURL),
		"previous_url": previousURL,
		"current_url":  newURL,
	})
}

func (s *Server) handleCurrentServer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	currentURL := s.dannet().BaseURL()

	serverType := "custom"
	switch currentURL {
	case config.LocalURL:
		serverType = "local"
	case config.RemoteURL:
		serverType = "remote"
	}

	status := ""
	if code, err := probe(ctx, currentURL); err != nil {
		status = fmt.Sprintf("Connection issue: %v", err)
	} else {
		status = fmt.Sprintf("Connected (HTTP %d)", code)
	}

	return jsonResult(map[string]string{
		"server_url":  currentURL,
		"server_type": serverType,
		"status":      status,
	})
}

func (s *Server) handleFetchDDODefinition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	synsetID, err := request.RequireString("synset_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fetcher := ddo.NewFetcher(s.dannet(), s.logger)
	result, err := fetcher.FetchDefinition(ctx, synsetID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch DDO definition: %v", err)), nil
	}
	return jsonResult(result)
}

// probe issues one GET against the server root to see whether it responds
// at all. Any HTTP status counts as alive.
func probe(ctx context.Context, baseURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/", nil)
	if err != nil {
		return 0, err
	}
	resp, err := httpclient.New(probeTimeout).Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
