package model

// SchemaTypeWeights ranks JSON-LD @type values by how useful they are to
// automated content consumers. Types absent from the map contribute nothing
// to richness scoring.
var SchemaTypeWeights = map[string]int{
	"Article":             10,
	"NewsArticle":         10,
	"BlogPosting":         9,
	"FAQPage":             10,
	"QAPage":              10,
	"HowTo":               9,
	"Recipe":              8,
	"Product":             8,
	"Service":             7,
	"Organization":        6,
	"Person":              6,
	"Event":               7,
	"Place":               6,
	"Review":              8,
	"VideoObject":         7,
	"ImageObject":         6,
	"Dataset":             9,
	"SoftwareApplication": 7,
}

// highValueCutoff separates content-bearing schema types from generic
// entity markup (Organization, Person, Place, ImageObject).
const highValueCutoff = 7

// IsHighValueSchema reports whether a schema type is in the high-value set.
func IsHighValueSchema(schemaType string) bool {
	return SchemaTypeWeights[schemaType] >= highValueCutoff
}
