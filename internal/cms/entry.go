package cms

import "encoding/json"

// Sys carries the CMS system metadata of an entry, asset, or link.
type Sys struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	LinkType    string `json:"linkType,omitempty"`
	ContentType *struct {
		Sys Sys `json:"sys"`
	} `json:"contentType,omitempty"`
}

// Entry is a single content record: a system identifier plus a fields map.
// Field values stay raw until the transformer gives them a shape.
type Entry struct {
	Sys    Sys                        `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// ContentTypeID returns the entry's content type identifier, or "" for
// includes that carry none.
func (e Entry) ContentTypeID() string {
	if e.Sys.ContentType == nil {
		return ""
	}
	return e.Sys.ContentType.Sys.ID
}

// Asset is a media record. Only the file URL is of interest to the
// transformer.
type Asset struct {
	Sys    Sys `json:"sys"`
	Fields struct {
		Title string `json:"title"`
		File  struct {
			URL         string `json:"url"`
			ContentType string `json:"contentType"`
		} `json:"file"`
	} `json:"fields"`
}

// EntryCollection is one page of entries plus the linked records the API
// chose to inline. Links whose targets are absent from Includes stay
// unresolved: the target was unpublished, deleted, or beyond the requested
// reference depth.
type EntryCollection struct {
	Total    int     `json:"total"`
	Skip     int     `json:"skip"`
	Limit    int     `json:"limit"`
	Items    []Entry `json:"items"`
	Includes struct {
		Entry []Entry `json:"Entry"`
		Asset []Asset `json:"Asset"`
	} `json:"includes"`
}

// link is the wire shape of a reference field value.
type link struct {
	Sys Sys `json:"sys"`
}

// Reference is the tagged result of following a reference link: exactly one
// of ResolvedEntry, ResolvedAsset, or UnresolvedLink. Consumers must
// type-switch over all three rather than probe for field presence.
type Reference interface {
	isReference()
}

// ResolvedEntry is a link whose target entry was inlined by the API.
type ResolvedEntry struct {
	Entry Entry
}

// ResolvedAsset is a link whose target asset was inlined by the API.
type ResolvedAsset struct {
	Asset Asset
}

// UnresolvedLink is a link whose target is not available. Only the opaque
// identifier is known; it must never surface in domain values.
type UnresolvedLink struct {
	ID       string
	LinkType string
}

func (ResolvedEntry) isReference()  {}
func (ResolvedAsset) isReference()  {}
func (UnresolvedLink) isReference() {}

// Resolve follows one link against the collection's includes.
func (c *EntryCollection) Resolve(l link) Reference {
	switch l.Sys.LinkType {
	case "Asset":
		for _, a := range c.Includes.Asset {
			if a.Sys.ID == l.Sys.ID {
				return ResolvedAsset{Asset: a}
			}
		}
	default:
		for _, e := range c.Includes.Entry {
			if e.Sys.ID == l.Sys.ID {
				return ResolvedEntry{Entry: e}
			}
		}
	}
	return UnresolvedLink{ID: l.Sys.ID, LinkType: l.Sys.LinkType}
}

// referenceField decodes a single-link field and resolves it. Returns nil
// when the field is absent or not a link.
func referenceField(e Entry, col *EntryCollection, field string) Reference {
	raw, ok := e.Fields[field]
	if !ok {
		return nil
	}
	var l link
	if err := json.Unmarshal(raw, &l); err != nil || l.Sys.ID == "" {
		return nil
	}
	return col.Resolve(l)
}

// referenceListField decodes a multi-link field and resolves each element.
// Returns nil when the field is absent or not a link array.
func referenceListField(e Entry, col *EntryCollection, field string) []Reference {
	raw, ok := e.Fields[field]
	if !ok {
		return nil
	}
	var links []link
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil
	}
	refs := make([]Reference, 0, len(links))
	for _, l := range links {
		if l.Sys.ID == "" {
			continue
		}
		refs = append(refs, col.Resolve(l))
	}
	return refs
}
