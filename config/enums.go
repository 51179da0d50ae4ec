package config

// Token export formats.
// ENUM(text, json, yaml, template)
type OutputFormat int

// Order of tokens in exports.
// ENUM(source, natural)
type SortOrder int

func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatText:
		return ".css"
	case OutputFormatJson:
		return ".json"
	case OutputFormatYaml:
		return ".yaml"
	case OutputFormatTemplate:
		return ""
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
