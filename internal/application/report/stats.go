package report

import "github.com/shopspring/decimal"

// Compliance porcentaje de reportes concluidos sobre el total, redondeado a
// 2 decimales. Con total cero retorna 0 en lugar de dividir.
func Compliance(concluded, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(concluded)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
	f, _ := pct.Float64()
	return f
}
