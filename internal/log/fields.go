package log

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentConfig   = "config"
	ComponentPipeline = "pipeline"
	ComponentFetch    = "fetch"
	ComponentCombine  = "combine"
	ComponentStorage  = "storage"
	ComponentAPI      = "rescuetime"
)

// Common field names for structured logging
const (
	FieldDomain   = "domain"
	FieldGroup    = "group"
	FieldSubgroup = "subgroup"
	FieldChunk    = "chunk"
	FieldChunks   = "chunks"
	FieldRows     = "rows"
	FieldPath     = "path"
	FieldError    = "error"
)
