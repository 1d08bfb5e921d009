// Package mcpserver exposes the DanNet lexical database to AI agents over
// the Model Context Protocol: tools for searching and fetching entities,
// resources for the RDF schemas behind them.
package mcpserver

import (
	"sync/atomic"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wordnet-dk/dannet-mcp/dannet"
	"github.com/wordnet-dk/dannet-mcp/version"
)

const instructions = `DanNet is the Danish WordNet, a lexical-semantic database
organizing Danish words into synsets (sets of synonymous word senses) with
rich semantic relations.

Recommended workflow:
1. Start with get_word_synsets to find the synsets for a Danish word.
2. Use get_synset_info for full semantic data on one synset, including
   taxonomic relations (wn:hypernym, wn:hyponym), ontological types
   (dns:ontologicalType) and sentiment (dns:sentiment).
3. Follow URI references with get_entity_info, get_word_info and
   get_sense_info; use the dannet://schema/{prefix} resources to interpret
   namespace prefixes.
4. Synset definitions may be truncated; fetch_ddo_definition retrieves the
   full text from Den Danske Ordbog.

Only Danish words can be searched. Labels like "{hund_1; køter}" compose
DDO sense labels, where "hund_1§1" means word "hund", entry 1, definition 1
in Den Danske Ordbog.`

// Server wires the DanNet client and DDO fetcher into an MCP server
// speaking stdio.
//
// The active client sits behind an atomic pointer so that the
// switch_dannet_server tool can swap endpoints at runtime. A multi-hop
// operation in flight during a switch may complete against a mix of old
// and new endpoints; both serve the same dataset, so this is tolerated
// rather than locked against.
type Server struct {
	mcp     *server.MCPServer
	client  atomic.Pointer[dannet.Client]
	opts    dannet.Options
	logger  *zap.SugaredLogger
}

// New creates a Server around an initial DanNet client. opts is reused when
// switch_dannet_server builds clients for other endpoints, so timeout and
// throttling settings survive a switch.
func New(client *dannet.Client, opts dannet.Options, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := &Server{
		opts:   opts,
		logger: logger,
	}
	s.client.Store(client)

	s.mcp = server.NewMCPServer(
		"DanNet",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithInstructions(instructions),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// dannet returns the currently active client.
func (s *Server) dannet() *dannet.Client {
	return s.client.Load()
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Infow("Starting DanNet MCP server", "server_url", s.dannet().BaseURL())
	return server.ServeStdio(s.mcp)
}
