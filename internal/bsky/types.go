package bsky

// Record collection and embed type identifiers.
const (
	CollectionPost     = "app.bsky.feed.post"
	EmbedTypeImages    = "app.bsky.embed.images"
	EmbedTypeExternal  = "app.bsky.embed.external"
	FacetFeatureLink   = "app.bsky.richtext.facet#link"
	FacetTypeRichtext  = "app.bsky.richtext.facet"
	blobTypeIdentifier = "blob"
)

// SessionTokens is returned by createSession and refreshSession.
type SessionTokens struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	Did        string `json:"did"`
	Handle     string `json:"handle"`
}

// BlobLink is the CID link inside a blob reference.
type BlobLink struct {
	Link string `json:"$link"`
}

// Blob is a reference to an uploaded blob, embedded verbatim in records.
type Blob struct {
	Type     string   `json:"$type"`
	Ref      BlobLink `json:"ref"`
	MimeType string   `json:"mimeType"`
	Size     int64    `json:"size"`
}

// ImageEmbed is one image of an images embed.
type ImageEmbed struct {
	Alt   string `json:"alt"`
	Image *Blob  `json:"image"`
}

// External is the link card of an external embed.
type External struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumb       *Blob  `json:"thumb,omitempty"`
}

// Embed is either an images embed or an external (link card) embed.
type Embed struct {
	Type     string       `json:"$type"`
	Images   []ImageEmbed `json:"images,omitempty"`
	External *External    `json:"external,omitempty"`
}

// ByteSlice is a UTF-8 byte range within post text.
type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// FacetFeature annotates a facet; only links are produced.
type FacetFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri"`
}

// Facet is a rich-text annotation over a byte range.
type Facet struct {
	Type     string         `json:"$type,omitempty"`
	Index    ByteSlice      `json:"index"`
	Features []FacetFeature `json:"features"`
}

// PostRecord is the app.bsky.feed.post record body.
type PostRecord struct {
	Type      string  `json:"$type"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"createdAt"`
	Embed     *Embed  `json:"embed,omitempty"`
	Facets    []Facet `json:"facets,omitempty"`
}

// CreateRecordRequest is the createRecord input.
type CreateRecordRequest struct {
	Repo       string      `json:"repo"`
	Collection string      `json:"collection"`
	Record     *PostRecord `json:"record"`
}

// CreateRecordOutput is the createRecord output.
type CreateRecordOutput struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}
