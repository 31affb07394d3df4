package domain

import "errors"

var ErrUnknownTool = errors.New("unknown tool")

// Tool identifies one of the client-side conversion tools whose free usage is
// metered per identity per calendar day.
type Tool string

const (
	ToolImage     Tool = "image"
	ToolPDFMerge  Tool = "pdfMerge"
	ToolZipFolder Tool = "zipFolder"
	ToolHEIC      Tool = "heic"
	ToolImagePro  Tool = "imagePro"
	ToolPDFTools  Tool = "pdftools"
)

// Tools lists every metered tool.
var Tools = []Tool{ToolImage, ToolPDFMerge, ToolZipFolder, ToolHEIC, ToolImagePro, ToolPDFTools}

// ParseTool maps a wire-level tool name to a Tool, or ErrUnknownTool.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrUnknownTool
}

// QuotaDecision is the outcome of a check-and-increment against a tool's
// daily limit. Remaining is what is left after the call; on a rejected call
// the stored count is untouched.
type QuotaDecision struct {
	Allowed   bool   `json:"ok"`
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
	Day       string `json:"day"`
}
