// Package pdf genera la representación imprimible de una oferta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  [logo] Razón social + NIF   │  OFERTA N° + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email / IBAN / Web                │
//	│  CLIENTE: Nombre + contacto                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Descripción | Cant | P.Unit | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  NOTAS + validez                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// LogoResolver traduce la ruta pública del logo a un archivo en disco ("" si no existe).
type LogoResolver func(publicPath string) string

// MarotoOfferPDF implementa offer.PDFRenderer usando Maroto v2.
type MarotoOfferPDF struct {
	lang        language.Tag
	resolveLogo LogoResolver
}

// NewMarotoOfferPDF construye el generador. resolveLogo puede ser nil (sin logo).
func NewMarotoOfferPDF(lang language.Tag, resolveLogo LogoResolver) *MarotoOfferPDF {
	return &MarotoOfferPDF{lang: lang, resolveLogo: resolveLogo}
}

// RenderOffer genera el PDF y devuelve sus bytes.
func (g *MarotoOfferPDF) RenderOffer(offer *entity.Offer, company *entity.Company) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Oferta "+offer.OfferNumber, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(offer, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company))
	m.AddRows(clienteRow(offer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableItemRows(offer)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(offer))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(offer)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo + razón social (izq) y N° de oferta + fecha (der).
func (g *MarotoOfferPDF) headerRow(offer *entity.Offer, company *entity.Company) core.Row {
	identity := []core.Component{
		text.New(company.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	if company.TaxNumber != "" {
		identity = append(identity, text.New("NIF: "+company.TaxNumber, props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}))
	}

	cols := make([]core.Col, 0, 3)
	nameSize := 7
	if logo := g.logoFile(company.Logo); logo != "" {
		cols = append(cols, col.New(2).Add(image.NewFromFile(logo, props.Rect{Percent: 90, Center: true})))
		nameSize = 5
	}
	cols = append(cols,
		col.New(nameSize).Add(identity...),
		col.New(5).Add(
			text.New("OFERTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(offer.OfferNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+offer.OfferDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
	return row.New(20).Add(cols...)
}

// emisorRow: datos de contacto de la empresa.
func emisorRow(company *entity.Company) core.Row {
	contact := fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
		nonEmpty(company.Address, "-"),
		nonEmpty(company.Phone, "-"),
		nonEmpty(company.Email, "-"),
	)
	var extra []string
	if company.IBAN != "" {
		extra = append(extra, "IBAN: "+company.IBAN)
	}
	if company.Website != "" {
		extra = append(extra, "Web: "+company.Website)
	}
	components := []core.Component{
		text.New("DATOS DEL EMISOR", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(contact, props.Text{Size: 8, Top: 7, Color: colorGray}),
	}
	if len(extra) > 0 {
		components = append(components, text.New(strings.Join(extra, "   |   "), props.Text{
			Size: 8, Top: 12, Color: colorGray,
		}))
	}
	return row.New(17).Add(col.New(12).Add(components...))
}

// clienteRow: copia de los datos del cliente tomada en la oferta.
func clienteRow(offer *entity.Offer) core.Row {
	return row.New(19).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(offer.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				offer.CustomerEmail,
				nonEmpty(offer.CustomerPhone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(offer.CustomerAddress, props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por línea de la oferta, en orden de posición.
func (g *MarotoOfferPDF) tableItemRows(offer *entity.Offer) []core.Row {
	result := make([]core.Row, 0, len(offer.Items))
	for _, it := range offer.Items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(it.Position),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				g.amount(it.UnitPrice, offer.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.amount(it.TotalPrice, offer.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total de la oferta alineado a la derecha.
func (g *MarotoOfferPDF) totalRow(offer *entity.Offer) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.amount(offer.TotalAmount, offer.Currency), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: notas libres y fecha de validez.
func footerRows(offer *entity.Offer) []core.Row {
	var rows []core.Row
	if offer.Notes != "" {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}))),
			row.New(12).Add(col.New(12).Add(text.New(offer.Notes, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}))),
		)
	}
	validity := "Oferta sin fecha de vencimiento."
	if offer.DueDate != nil {
		validity = "Oferta válida hasta el " + offer.DueDate.Format("02/01/2006") + "."
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(text.New(validity, props.Text{
		Style: fontstyle.Italic, Size: 8, Color: colorGray, Top: 2,
	}))))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoOfferPDF) amount(d decimal.Decimal, currency string) string {
	return money.Format(d, currency, g.lang)
}

// logoFile devuelve el archivo del logo si existe y maroto puede incrustarlo (png/jpg).
func (g *MarotoOfferPDF) logoFile(publicPath string) string {
	if publicPath == "" || g.resolveLogo == nil {
		return ""
	}
	switch strings.ToLower(filepath.Ext(publicPath)) {
	case ".png", ".jpg", ".jpeg":
	default:
		return ""
	}
	file := g.resolveLogo(publicPath)
	if file == "" {
		return ""
	}
	if _, err := os.Stat(file); err != nil {
		return ""
	}
	return file
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
