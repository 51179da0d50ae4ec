// Package css contains parsers for individual custom property values: colors,
// numbers with units and keywords, and the closed set of typed values they
// produce.
package css
