package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for catalogue documents.
//
// Names use the simple analyzer so proper nouns are not stemmed; descriptions
// get English stemming. Type, class and category are keywords for filtering
// and faceting.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields ---

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = simple.Name
	nameField.Store = true
	nameField.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameField)

	cuisinesField := bleve.NewTextFieldMapping()
	cuisinesField.Analyzer = simple.Name
	cuisinesField.Store = true
	docMapping.AddFieldMappingsAt("cuisines", cuisinesField)

	descField := bleve.NewTextFieldMapping()
	descField.Analyzer = en.AnalyzerName
	descField.Store = false
	docMapping.AddFieldMappingsAt("description", descField)

	// --- Keyword fields ---

	for _, name := range []string{"type", "class", "category"} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	// --- Numeric fields ---

	for _, name := range []string{"entity_id", "difficulty", "cuisine_ids"} {
		f := bleve.NewNumericFieldMapping()
		f.Store = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
