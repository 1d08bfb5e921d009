package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	wordnetSchema := mcp.NewResource("dannet://wordnet-schema",
		"Global WordNet schema",
		mcp.WithResourceDescription("RDF schema defining standard WordNet relations like wn:hypernym and wn:hyponym"),
		mcp.WithMIMEType("text/turtle"),
	)
	s.mcp.AddResource(wordnetSchema, s.schemaHandler("wn"))

	dannetSchema := mcp.NewResource("dannet://dannet-schema",
		"DanNet schema",
		mcp.WithResourceDescription("RDF schema defining DanNet-specific properties like dns:ontologicalType and dns:sentiment"),
		mcp.WithMIMEType("text/turtle"),
	)
	s.mcp.AddResource(dannetSchema, s.schemaHandler("dns"))

	ontologicalTypes := mcp.NewResource("dannet://ontological-types",
		"Ontological types taxonomy",
		mcp.WithResourceDescription("RDF schema defining the extended EuroWordNet semantic categories like dnc:Animal and dnc:Human"),
		mcp.WithMIMEType("text/turtle"),
	)
	s.mcp.AddResource(ontologicalTypes, s.schemaHandler("dnc"))

	schemaTemplate := mcp.NewResourceTemplate("dannet://schema/{prefix}",
		"RDF schema by namespace prefix",
		mcp.WithTemplateDescription("RDF schema in Turtle format for a namespace prefix: dns, dnc, wn, ontolex, skos, lexinfo, marl, ..."),
		mcp.WithTemplateMIMEType("text/turtle"),
	)
	s.mcp.AddResourceTemplate(schemaTemplate, s.handleSchemaTemplate)

	namespaces := mcp.NewResource("dannet://namespaces",
		"Namespace documentation",
		mcp.WithResourceDescription("Documentation of all namespaces used in DanNet RDF data, with URIs and usage patterns"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(namespaces, s.handleNamespaces)

	schemas := mcp.NewResource("dannet://schemas",
		"Schema catalog",
		mcp.WithResourceDescription("Listing of all available RDF schemas with descriptions and relevance to DanNet"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(schemas, s.handleSchemaCatalog)
}

// schemaHandler serves one fixed namespace schema fetched from the active
// DanNet server.
func (s *Server) schemaHandler(prefix string) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		schema, err := s.dannet().Schema(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("fetching schema %q: %w", prefix, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/turtle",
				Text:     schema,
			},
		}, nil
	}
}

func (s *Server) handleSchemaTemplate(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	prefix := strings.TrimPrefix(request.Params.URI, "dannet://schema/")
	if prefix == "" || strings.Contains(prefix, "/") {
		return nil, fmt.Errorf("invalid schema URI: %s", request.Params.URI)
	}
	return s.schemaHandler(prefix)(ctx, request)
}

func (s *Server) handleNamespaces(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(request.Params.URI, namespaceDocumentation)
}

func (s *Server) handleSchemaCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(request.Params.URI, schemaCatalog)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// namespaceDocumentation describes the namespaces appearing in DanNet RDF
// data. Served statically; the content documents stable vocabulary URIs,
// not live server state.
var namespaceDocumentation = map[string]any{
	"usage_guide": map[string]string{
		"understanding_prefixes": "Namespace prefixes map to full URIs in RDF data. For example, 'dns:sentiment' expands to 'https://wordnet.dk/dannet/schema/sentiment'.",
		"prefix_resolution":      "Use the schema resources to get full ontology definitions for each namespace.",
		"data_interpretation":    "Most DanNet synset properties use these prefixes. Core data is in 'dn:', relations are defined in 'dns:'.",
	},
	"namespace_mappings": map[string]any{
		"dn": map[string]any{
			"uri":         "https://wordnet.dk/dannet/data/",
			"description": "Core DanNet data namespace with all synsets, words, senses and instances",
			"examples":    []string{"dn:synset-3047", "dn:word-11021722", "dn:sense-21045953"},
		},
		"dns": map[string]any{
			"uri":         "https://wordnet.dk/dannet/schema/",
			"description": "DanNet-specific schema with properties and classes unique to DanNet",
			"examples":    []string{"dns:sentiment", "dns:ontologicalType", "dns:usedFor", "dns:orthogonalHypernym"},
		},
		"dnc": map[string]any{
			"uri":         "https://wordnet.dk/dannet/concepts/",
			"description": "Ontological types from the DanNet and EuroWordNet taxonomies",
			"examples":    []string{"dnc:Animal", "dnc:Human", "dnc:Institution", "dnc:BodyPart"},
		},
		"ontolex": map[string]any{
			"uri":         "http://www.w3.org/ns/lemon/ontolex#",
			"description": "W3C OntoLex-Lemon vocabulary for lexical resources",
			"examples":    []string{"ontolex:LexicalConcept", "ontolex:isEvokedBy", "ontolex:lexicalizedSense"},
		},
		"wn": map[string]any{
			"uri":         "https://globalwordnet.github.io/schemas/wn#",
			"description": "Global WordNet Association schema for synset relations",
			"examples":    []string{"wn:hypernym", "wn:hyponym", "wn:similar", "wn:ili"},
		},
		"skos": map[string]any{
			"uri":         "http://www.w3.org/2004/02/skos/core#",
			"description": "W3C vocabulary for knowledge organization systems",
			"examples":    []string{"skos:definition", "skos:altLabel", "skos:broader"},
		},
		"rdfs": map[string]any{
			"uri":         "http://www.w3.org/2000/01/rdf-schema#",
			"description": "RDF Schema vocabulary for basic ontology constructs",
			"examples":    []string{"rdfs:label", "rdfs:comment", "rdfs:subClassOf"},
		},
		"dc": map[string]any{
			"uri":         "http://purl.org/dc/terms/",
			"description": "Dublin Core metadata vocabulary",
			"examples":    []string{"dc:subject", "dc:title", "dc:issued"},
		},
	},
	"common_patterns": map[string]any{
		"synset_structure": []string{
			"rdf:type -> ontolex:LexicalConcept",
			"rdfs:label -> human readable synset label",
			"skos:definition -> definition text",
			"dns:ontologicalType -> semantic classification (dnc: types)",
			"ontolex:isEvokedBy -> words that evoke this synset",
			"wn:hypernym / wn:hyponym -> taxonomic relations",
		},
		"word_structure": []string{
			"rdf:type -> ontolex:LexicalEntry",
			"rdfs:label -> the word form",
			"ontolex:evokes -> synsets this word can evoke",
		},
	},
}

// schemaCatalog lists the RDF schemas loaded into the DanNet triplestore,
// grouped by how central they are to interpreting the data.
var schemaCatalog = map[string]any{
	"dannet_core": map[string]any{
		"description": "Essential schemas for understanding DanNet data structure",
		"schemas": map[string]any{
			"dns": map[string]any{
				"uri":         "https://wordnet.dk/dannet/schema/",
				"title":       "DanNet Schema",
				"description": "DanNet-specific relations, properties and classes",
				"relevance":   "essential",
			},
			"dnc": map[string]any{
				"uri":         "https://wordnet.dk/dannet/concepts/",
				"title":       "DanNet Concepts",
				"description": "All DanNet and EuroWordNet ontological types",
				"relevance":   "essential",
			},
		},
	},
	"linguistic_core": map[string]any{
		"description": "Core linguistic vocabularies used in DanNet",
		"schemas": map[string]any{
			"ontolex": map[string]any{
				"uri":         "http://www.w3.org/ns/lemon/ontolex#",
				"title":       "OntoLex-Lemon",
				"description": "W3C vocabulary for representing lexical data",
				"relevance":   "core",
			},
			"wn": map[string]any{
				"uri":         "https://globalwordnet.github.io/schemas/wn#",
				"title":       "Global WordNet Schema",
				"description": "Standard schema for WordNet synsets and relations",
				"relevance":   "core",
			},
			"lexinfo": map[string]any{
				"uri":         "http://www.lexinfo.net/ontology/3.0/lexinfo#",
				"title":       "LexInfo",
				"description": "Part-of-speech tags and morphological features",
				"relevance":   "supporting",
			},
		},
	},
	"semantic_web_standards": map[string]any{
		"description": "Standard W3C vocabularies for RDF and the semantic web",
		"schemas": map[string]any{
			"rdf": map[string]any{
				"uri":       "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
				"title":     "RDF",
				"relevance": "foundational",
			},
			"rdfs": map[string]any{
				"uri":       "http://www.w3.org/2000/01/rdf-schema#",
				"title":     "RDF Schema",
				"relevance": "foundational",
			},
			"owl": map[string]any{
				"uri":       "http://www.w3.org/2002/07/owl#",
				"title":     "Web Ontology Language",
				"relevance": "foundational",
			},
			"skos": map[string]any{
				"uri":       "http://www.w3.org/2004/02/skos/core#",
				"title":     "Simple Knowledge Organization System",
				"relevance": "supporting",
			},
		},
	},
	"metadata": map[string]any{
		"description": "Metadata and annotation vocabularies",
		"schemas": map[string]any{
			"dc": map[string]any{
				"uri":       "http://purl.org/dc/terms/",
				"title":     "Dublin Core Terms",
				"relevance": "metadata",
			},
			"foaf": map[string]any{
				"uri":       "http://xmlns.com/foaf/0.1/",
				"title":     "Friend of a Friend",
				"relevance": "metadata",
			},
			"marl": map[string]any{
				"uri":       "http://www.gsi.upm.es/ontologies/marl/ns#",
				"title":     "MARL Sentiment",
				"relevance": "specialized",
			},
		},
	},
}
