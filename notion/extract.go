package notion

import "strconv"

// Property is a single typed property value as returned by the Notion
// API. Only the member matching Type is populated.
type Property struct {
	Type        string        `json:"type"`
	Title       []richText    `json:"title"`
	RichText    []richText    `json:"rich_text"`
	Select      *namedOption  `json:"select"`
	Status      *namedOption  `json:"status"`
	MultiSelect []namedOption `json:"multi_select"`
	Date        *dateValue    `json:"date"`
	Number      *float64      `json:"number"`
	Checkbox    *bool         `json:"checkbox"`
	Formula     *formulaValue `json:"formula"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type namedOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

type formulaValue struct {
	Type    string     `json:"type"`
	String  *string    `json:"string"`
	Number  *float64   `json:"number"`
	Boolean *bool      `json:"boolean"`
	Date    *dateValue `json:"date"`
}

// ExtractPropertyValue flattens a typed property into a plain display
// string. Formulas recurse one level into their underlying typed result.
// Unrecognized property types yield an empty string rather than failing
// the whole response.
func ExtractPropertyValue(p Property) string {
	switch p.Type {
	case "title":
		return joinPlainText(p.Title)
	case "rich_text":
		return joinPlainText(p.RichText)
	case "select":
		return optionName(p.Select)
	case "status":
		return optionName(p.Status)
	case "multi_select":
		var s string
		for i, opt := range p.MultiSelect {
			if i > 0 {
				s += ", "
			}
			s += opt.Name
		}
		return s
	case "date":
		return dateStart(p.Date)
	case "number":
		return formatNumber(p.Number)
	case "checkbox":
		return formatCheckbox(p.Checkbox != nil && *p.Checkbox)
	case "formula":
		return extractFormulaValue(p.Formula)
	default:
		return ""
	}
}

// extractFormulaValue resolves a formula result. It does not recurse
// further than the one level the API returns.
func extractFormulaValue(f *formulaValue) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case "string":
		if f.String != nil {
			return *f.String
		}
		return ""
	case "number":
		return formatNumber(f.Number)
	case "boolean":
		return formatCheckbox(f.Boolean != nil && *f.Boolean)
	case "date":
		return dateStart(f.Date)
	default:
		return ""
	}
}

func joinPlainText(parts []richText) string {
	var s string
	for _, p := range parts {
		s += p.PlainText
	}
	return s
}

func optionName(opt *namedOption) string {
	if opt == nil {
		return ""
	}
	return opt.Name
}

func dateStart(d *dateValue) string {
	if d == nil {
		return ""
	}
	return d.Start
}

func formatNumber(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

// formatCheckbox renders a boolean the way the estimate UI displays it.
func formatCheckbox(checked bool) string {
	if checked {
		return "Sí"
	}
	return "No"
}
