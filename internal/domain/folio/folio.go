// Package folio genera el identificador secuencial de reportes de desviación.
//
// Formato: DESV-<DDMMYY>-<NN|NNN>, donde DDMMYY es la fecha de negocio del
// reporte y el sufijo es un consecutivo por fecha que inicia en 01. El sufijo
// usa 2 dígitos hasta 99 y promociona a 3 dígitos desde 100; el tope es 999
// reportes por fecha.
//
// Este paquete solo calcula candidatos: la exclusividad real la da el índice
// único de la capa de persistencia, combinado con el reintento acotado de
// Allocate ante violaciones de unicidad.
package folio

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jcamargo/desviaciones-api/internal/domain"
)

// Prefix prefijo fijo de todos los folios.
const Prefix = "DESV"

// MaxPerDate máximo de reportes por fecha de negocio antes de fallar la asignación.
const MaxPerDate = 999

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	folioRe   = regexp.MustCompile(`^DESV-(\d{6})-(\d{2,3})$`)
)

// layouts de respaldo para fechas que no vienen como YYYY-MM-DD.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02-01-2006",
}

// NormalizeDate convierte la fecha de negocio a time.Time local.
// "YYYY-MM-DD" se interpreta como calendario local sin conversión de zona;
// otros formatos se intentan con layouts conocidos; si nada parsea (o la
// fecha es inválida) se usa la fecha actual en lugar de fallar la operación.
func NormalizeDate(fecha string) time.Time {
	if isoDateRe.MatchString(fecha) {
		y, _ := strconv.Atoi(fecha[0:4])
		m, _ := strconv.Atoi(fecha[5:7])
		d, _ := strconv.Atoi(fecha[8:10])
		if t, ok := localDate(y, m, d); ok {
			return t
		}
		return time.Now()
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, fecha, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}

// localDate construye la fecha local y verifica que sea un día de calendario
// real (time.Date normaliza: 2025-02-30 se volvería 2 de marzo).
func localDate(y, m, d int) (time.Time, bool) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// DateKey deriva el segmento de fecha DDMMYY del folio.
// La secuencia se acota por este valor: reinicia con cada fecha de negocio.
func DateKey(fecha string) string {
	t := NormalizeDate(fecha)
	return fmt.Sprintf("%02d%02d%02d", t.Day(), int(t.Month()), t.Year()%100)
}

// PrefixForDate prefijo de búsqueda "DESV-DDMMYY-" para la fecha dada.
func PrefixForDate(fecha string) string {
	return Prefix + "-" + DateKey(fecha) + "-"
}

// Next calcula el siguiente consecutivo a partir de los sufijos existentes:
// uno más que el máximo, o 1 si no hay ninguno.
func Next(suffixes []int) int {
	max := 0
	for _, s := range suffixes {
		if s > max {
			max = s
		}
	}
	return max + 1
}

// Format arma el folio con el sufijo con ancho 2 (hasta 99) o 3 (desde 100).
// Sobre 999 la asignación falla en lugar de colisionar o dar la vuelta.
func Format(fecha string, seq int) (string, error) {
	if seq < 1 || seq > MaxPerDate {
		return "", fmt.Errorf("%w: secuencia %d fuera de rango para la fecha", domain.ErrFolioExhausted, seq)
	}
	width := 2
	if seq >= 100 {
		width = 3
	}
	return fmt.Sprintf("%s%0*d", PrefixForDate(fecha), width, seq), nil
}

// NextForDate calcula el siguiente folio disponible para la fecha dada.
func NextForDate(fecha string, suffixes []int) (string, error) {
	return Format(fecha, Next(suffixes))
}

// Parse descompone un folio en su clave de fecha DDMMYY y su consecutivo.
func Parse(f string) (dateKey string, seq int, ok bool) {
	m := folioRe.FindStringSubmatch(f)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return m[1], n, true
}
