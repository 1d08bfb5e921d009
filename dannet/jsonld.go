package dannet

import (
	"fmt"
	"strings"
)

// Namespace prefixes for the primary DanNet data namespace. The JSON-LD era
// uses "dn:synset-3047"; the pre-JSON-LD wire format used ":dn/synset-3047".
// Both strip to the same canonical identifier.
const (
	dataPrefix       = "dn:"
	legacyDataPrefix = ":dn/"
)

// ResourceID extracts the canonical identifier from a DanNet URI reference.
//
// The primary data namespace's own short-prefix forms are stripped exactly;
// any other prefixed name keeps the substring after the last namespace
// separator, then after the last path separator. A bare identifier passes
// through unchanged, which makes stripping idempotent.
func ResourceID(uri string) string {
	if strings.HasPrefix(uri, dataPrefix) {
		return uri[len(dataPrefix):]
	}
	if strings.HasPrefix(uri, legacyDataPrefix) {
		return uri[len(legacyDataPrefix):]
	}
	if i := strings.LastIndex(uri, ":"); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// LanguageValue resolves a language-tagged literal to a plain string.
//
// A bare string is returned as-is and a structured literal yields its @value.
// A sequence of variants is scanned for the preferred language tag first,
// falling back to the first element; this scan-then-fallback policy is
// applied uniformly wherever literals are resolved.
func LanguageValue(v any, preferredLang string) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any:
		if inner, ok := val["@value"]; ok {
			return LanguageValue(inner, preferredLang)
		}
		return ""
	case []any:
		if len(val) == 0 {
			return ""
		}
		if preferredLang != "" {
			for _, item := range val {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if lang, _ := m["@language"].(string); lang == preferredLang {
					return LanguageValue(m, preferredLang)
				}
			}
		}
		return LanguageValue(val[0], preferredLang)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ValidDocument reports whether a response body has the essential JSON-LD
// structure (@context, @id, @type).
func ValidDocument(m map[string]any) bool {
	if m == nil {
		return false
	}
	for _, key := range []string{"@context", "@id", "@type"} {
		if _, ok := m[key]; !ok {
			return false
		}
	}
	return true
}

// NamespacePrefixes extracts the prefix-to-URI mappings from a document's
// @context.
func NamespacePrefixes(m map[string]any) map[string]string {
	context, ok := m["@context"].(map[string]any)
	if !ok {
		return map[string]string{}
	}

	prefixes := make(map[string]string, len(context))
	for prefix, uri := range context {
		if s, ok := uri.(string); ok {
			prefixes[prefix] = s
		}
	}
	return prefixes
}

// ResolvePrefixed expands a prefixed name like "dns:sentiment" to its full
// URI using the namespace context. Full URIs and unknown prefixes pass
// through unchanged.
func ResolvePrefixed(uri string, context map[string]string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	prefix, local, found := strings.Cut(uri, ":")
	if !found {
		return uri
	}
	base, ok := context[prefix]
	if !ok {
		return uri
	}
	return base + local
}
