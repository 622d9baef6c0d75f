// Package mappings defines the Elasticsearch index mapping for archived
// VOC records.
package mappings

// BaseSettings defines common index-level settings.
type BaseSettings struct {
	NumberOfShards   int `json:"number_of_shards"`
	NumberOfReplicas int `json:"number_of_replicas"`
}

// DefaultSettings returns the default index settings.
func DefaultSettings() BaseSettings {
	return BaseSettings{
		NumberOfShards:   1,
		NumberOfReplicas: 1,
	}
}

// Field represents an Elasticsearch field mapping.
type Field struct {
	Type     string `json:"type,omitempty"`
	Analyzer string `json:"analyzer,omitempty"`
	Format   string `json:"format,omitempty"`
}

// VocRecordMapping represents the Elasticsearch mapping for archived VOC
// records.
type VocRecordMapping struct {
	Settings VocRecordSettings `json:"settings"`
	Mappings VocRecordMappings `json:"mappings"`
}

// VocRecordSettings defines index-level settings.
type VocRecordSettings struct {
	BaseSettings
}

// VocRecordMappings defines the field mappings for archived records.
type VocRecordMappings struct {
	Properties VocRecordProperties `json:"properties"`
}

// VocRecordProperties mirrors the archived record document.
type VocRecordProperties struct {
	Date        Field `json:"date"`
	Game        Field `json:"game"`
	Platform    Field `json:"platform"`
	TagLevel1   Field `json:"tag_level1"`
	TagLevel2   Field `json:"tag_level2"`
	Title       Field `json:"title"`
	BodySummary Field `json:"body_summary"`
	Identifier  Field `json:"identifier"`
	DeviceInfo  Field `json:"device_info"`
	Sentiment   Field `json:"sentiment"`
	ArchivedAt  Field `json:"archived_at"`
}

// NewVocRecordMapping creates the archive mapping with default settings.
// Title and body use the nori analyzer so Korean VOC text tokenizes by
// morpheme instead of whitespace.
func NewVocRecordMapping() *VocRecordMapping {
	return &VocRecordMapping{
		Settings: VocRecordSettings{
			BaseSettings: DefaultSettings(),
		},
		Mappings: VocRecordMappings{
			Properties: VocRecordProperties{
				Date: Field{
					Type:   "date",
					Format: "strict_date_optional_time||epoch_millis",
				},
				Game: Field{
					Type: "keyword",
				},
				Platform: Field{
					Type: "keyword",
				},
				TagLevel1: Field{
					Type: "keyword",
				},
				TagLevel2: Field{
					Type: "keyword",
				},
				Title: Field{
					Type:     "text",
					Analyzer: "nori",
				},
				BodySummary: Field{
					Type:     "text",
					Analyzer: "nori",
				},
				Identifier: Field{
					Type: "keyword",
				},
				DeviceInfo: Field{
					Type: "keyword",
				},
				Sentiment: Field{
					Type: "keyword",
				},
				ArchivedAt: Field{
					Type:   "date",
					Format: "strict_date_optional_time||epoch_millis",
				},
			},
		},
	}
}
