package css

import "strings"

// keywords lists style keywords which are kept as String values. Color
// keywords are not here: "transparent" is handled by color parser.
var keywords = map[string]struct{}{
	// global
	"inherit": {}, "initial": {}, "unset": {}, "revert": {}, "none": {}, "auto": {}, "normal": {},
	"currentcolor": {},

	// border styles
	"solid": {}, "dashed": {}, "dotted": {}, "double": {}, "groove": {}, "ridge": {}, "inset": {},
	"outset": {}, "hidden": {},

	// display
	"block": {}, "inline": {}, "inline-block": {}, "flex": {}, "inline-flex": {}, "grid": {},
	"inline-grid": {}, "contents": {}, "table": {}, "list-item": {},

	// position
	"static": {}, "relative": {}, "absolute": {}, "fixed": {}, "sticky": {},

	// overflow, visibility
	"visible": {}, "scroll": {}, "clip": {},

	// text-align
	"left": {}, "right": {}, "center": {}, "justify": {}, "start": {}, "end": {},

	// white-space
	"nowrap": {}, "pre": {}, "pre-wrap": {}, "pre-line": {}, "break-spaces": {},

	// easing
	"ease": {}, "ease-in": {}, "ease-out": {}, "ease-in-out": {}, "linear": {}, "step-start": {},
	"step-end": {},

	// font
	"bold": {}, "bolder": {}, "lighter": {}, "italic": {}, "oblique": {}, "uppercase": {},
	"lowercase": {}, "capitalize": {}, "underline": {}, "overline": {}, "line-through": {},

	// cursor, pointer-events, misc
	"pointer": {}, "default": {}, "text": {}, "move": {}, "not-allowed": {}, "grab": {},
	"grabbing": {}, "wait": {}, "help": {}, "crosshair": {}, "all": {}, "row": {}, "column": {},
	"wrap": {}, "stretch": {}, "baseline": {}, "space-between": {}, "space-around": {},
	"space-evenly": {}, "flex-start": {}, "flex-end": {}, "cover": {}, "contain": {},
	"border-box": {}, "content-box": {}, "ellipsis": {}, "top": {}, "bottom": {}, "middle": {},
}

// IsKeyword reports whether s (case-insensitive, surrounding whitespace
// ignored) is a recognized style keyword.
func IsKeyword(s string) bool {
	_, ok := keywords[ToLowerASCII(strings.TrimSpace(s))]
	return ok
}
