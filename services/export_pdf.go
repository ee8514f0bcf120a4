package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateEstimatePDF creates a PDF document for a project estimate using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateEstimatePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)

	for _, section := range data.Sections {
		addCategoryHeader(m, section.Category)
		addItemsTableHeader(m)
		for _, item := range section.Items {
			addItemRow(m, item)
		}
		addCategorySubtotal(m, section)
	}

	addGrandTotal(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addEstimateHeader adds the project title, ticket, responsible and date.
func addEstimateHeader(m core.Maroto, data ExportData) {
	title := data.ProjectTitle
	if title == "" {
		title = "Proyecto " + data.ProjectTicket
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	gray := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(
				text.New(fmt.Sprintf("Ticket: %s", data.ProjectTicket), props.Text{
					Size:  9,
					Align: align.Left,
					Color: gray,
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Responsable: %s", data.Responsible), props.Text{
					Size:  9,
					Align: align.Center,
					Color: gray,
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Fecha: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: gray,
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addCategoryHeader adds a full-width category band before its item table.
func addCategoryHeader(m core.Maroto, category string) {
	bg := &props.Color{Red: 229, Green: 231, Blue: 235}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(category, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			).WithStyle(&props.Cell{BackgroundColor: bg}),
		),
	)
}

// addItemsTableHeader adds the column header row for an item table.
func addItemsTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Descripción", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Cant.", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unidad", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Costo Unit.", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Mult.", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Subtotal", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addItemRow adds a single estimate line to its category table.
func addItemRow(m core.Maroto, item ExportItem) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	desc := item.Description
	if item.ScheduleType != "" {
		desc = fmt.Sprintf("%s (%s)", desc, item.ScheduleType)
	}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(item.Index, baseText)),
			col.New(4).Add(text.New(desc, leftText)),
			col.New(1).Add(text.New(formatQty(item.Quantity), rightText)),
			col.New(1).Add(text.New(item.Unit, baseText)),
			col.New(2).Add(text.New(FormatMoney(item.UnitCost), rightText)),
			col.New(1).Add(text.New(formatMultiplier(item.Multiplier), baseText)),
			col.New(2).Add(text.New(FormatMoney(item.Subtotal), rightText)),
		),
	)
}

// addCategorySubtotal adds the subtotal row closing a category section.
func addCategorySubtotal(m core.Maroto, section ExportSection) {
	bg := &props.Color{Red: 245, Green: 245, Blue: 245}
	cell := &props.Cell{BackgroundColor: bg}

	m.AddRows(
		row.New(8).Add(
			col.New(10).Add(
				text.New(fmt.Sprintf("Total %s", section.Category), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(cell),
			col.New(2).Add(
				text.New(FormatMoney(section.Subtotal), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(cell),
		),
	)

	m.AddRows(row.New(4))
}

// addGrandTotal adds the closing grand total band.
func addGrandTotal(m core.Maroto, data ExportData) {
	bg := &props.Color{Red: 220, Green: 230, Blue: 241}
	cell := &props.Cell{BackgroundColor: bg}

	m.AddRows(
		row.New(10).Add(
			col.New(10).Add(
				text.New("Total General", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(cell),
			col.New(2).Add(
				text.New(FormatMoney(data.GrandTotal), props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(cell),
		),
	)
}
