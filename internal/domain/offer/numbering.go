// Package offer contiene las reglas de dominio puras de las ofertas (numeración).
package offer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPrefix prefijo de numeración si no se configura otro.
const DefaultPrefix = "TKF"

// NumberingPolicy deriva el siguiente número visible de oferta de una empresa
// a partir del último número emitido. Formato: PREFIX-YYYYMM-NNN.
//
// Por defecto el correlativo continúa entre meses (TKF-202401-007 → TKF-<mes actual>-008);
// con ResetMonthly el correlativo vuelve a 001 cuando el último número es de otro mes.
type NumberingPolicy struct {
	Prefix       string
	ResetMonthly bool
}

// NewNumberingPolicy construye la política; prefijo vacío usa DefaultPrefix.
func NewNumberingPolicy(prefix string, resetMonthly bool) NumberingPolicy {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return NumberingPolicy{Prefix: prefix, ResetMonthly: resetMonthly}
}

// Next devuelve el número siguiente a last (vacío = empresa sin ofertas) usando el mes de now.
// Un número con formato inválido reinicia el correlativo en 001. Los guiones del prefijo
// cuentan como partes del número esperado.
func (p NumberingPolicy) Next(last string, now time.Time) string {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	stamp := now.Format("200601")

	seq := 1
	if last != "" {
		parts := strings.Split(last, "-")
		if k := len(parts); k == 3+strings.Count(prefix, "-") {
			if n, err := strconv.Atoi(parts[k-1]); err == nil {
				seq = n + 1
				if p.ResetMonthly && parts[k-2] != stamp {
					seq = 1
				}
			}
		}
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, stamp, seq)
}
