package email

import (
	"bytes"
	"html/template"

	"golang.org/x/text/language"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/pkg/money"
)

var offerTemplate = template.Must(template.New("offer").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #333;">
  <h2 style="color: #00467f;">Oferta {{.Number}}</h2>
  <p>Estimado/a {{.CustomerName}},</p>
  <p>{{.CompanyName}} le hace llegar la siguiente oferta.</p>
  <table cellpadding="6" cellspacing="0" style="border-collapse: collapse; width: 100%;">
    <thead>
      <tr style="background: #00467f; color: #fff;">
        <th align="left">Descripción</th>
        <th align="center">Cant.</th>
        <th align="right">Precio Unit.</th>
        <th align="right">Total</th>
      </tr>
    </thead>
    <tbody>
      {{- range .Items}}
      <tr style="border-bottom: 1px solid #ddd;">
        <td>{{.Description}}</td>
        <td align="center">{{.Quantity}}</td>
        <td align="right">{{.UnitPrice}}</td>
        <td align="right">{{.Total}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
  <p style="font-size: 1.1em;"><strong>Total: {{.Total}}</strong></p>
  {{- if .DueDate}}
  <p>Oferta válida hasta el {{.DueDate}}.</p>
  {{- end}}
  {{- if .Notes}}
  <p><em>{{.Notes}}</em></p>
  {{- end}}
  <p>Saludos cordiales,<br>{{.CompanyName}}</p>
</body>
</html>
`))

type itemRow struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

type offerView struct {
	Number       string
	CustomerName string
	CompanyName  string
	Items        []itemRow
	Total        string
	DueDate      string
	Notes        string
}

// renderOffer devuelve el cuerpo HTML del email de una oferta.
func renderOffer(offer *entity.Offer, company *entity.Company, lang language.Tag) (string, error) {
	view := offerView{
		Number:       offer.OfferNumber,
		CustomerName: offer.CustomerName,
		CompanyName:  company.Name,
		Items:        make([]itemRow, 0, len(offer.Items)),
		Total:        money.Format(offer.TotalAmount, offer.Currency, lang),
		Notes:        offer.Notes,
	}
	for _, it := range offer.Items {
		view.Items = append(view.Items, itemRow{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   money.Format(it.UnitPrice, offer.Currency, lang),
			Total:       money.Format(it.TotalPrice, offer.Currency, lang),
		})
	}
	if offer.DueDate != nil {
		view.DueDate = offer.DueDate.Format("02/01/2006")
	}

	var buf bytes.Buffer
	if err := offerTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
