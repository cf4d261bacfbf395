// Package currency convierte precios entre las monedas que muestra la tienda
// con tasas fijas.
package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedPair = errors.New("currency pair not supported")

const usdToNGN = 1650

// rates usa claves "<FROM>_TO_<TO>"
var rates = map[string]float64{
	"USD_TO_NGN": usdToNGN,
	"NGN_TO_USD": 1.0 / usdToNGN,
}

// Quote es la respuesta de GET /api/currency/rate
type Quote struct {
	Rate float64 `json:"rate"`
	From string  `json:"from"`
	To   string  `json:"to"`
}

// Conversion es la respuesta de POST /api/currency/convert
type Conversion struct {
	OriginalAmount  any     `json:"originalAmount"`
	ConvertedAmount float64 `json:"convertedAmount"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	Rate            float64 `json:"rate"`
}

// Rate busca la tasa sin importar mayúsculas
func Rate(from, to string) (Quote, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	rate, ok := rates[from+"_TO_"+to]
	if !ok {
		return Quote{}, ErrUnsupportedPair
	}
	return Quote{Rate: rate, From: from, To: to}, nil
}

// Convert multiplica por la tasa y redondea a dos decimales
func Convert(amount float64, from, to string) (Conversion, error) {
	q, err := Rate(from, to)
	if err != nil {
		return Conversion{}, err
	}
	converted, _ := decimal.NewFromFloat(amount * q.Rate).Round(2).Float64()
	return Conversion{
		OriginalAmount:  amount,
		ConvertedAmount: converted,
		From:            q.From,
		To:              q.To,
		Rate:            q.Rate,
	}, nil
}
