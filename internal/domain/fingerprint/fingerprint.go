// Package fingerprint: digest de contenido por SKU para la detección de cambios del sync.
// Algoritmo: MD5 sobre los campos de negocio concatenados en orden fijo. No es una
// frontera de seguridad; solo decide si una fila necesita reescribirse.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// sep separador entre campos de la cadena; evita colisiones por concatenación ("ab"+"c" vs "a"+"bc").
const sep = "|"

// Fields campos de negocio que participan en el fingerprint, en el orden de la cadena.
// Deliberadamente NO incluye metadatos volátiles (timestamps de sync, flags de UI):
// el mismo contenido de negocio debe producir siempre el mismo digest.
type Fields struct {
	SKU          string
	Name         string
	Quantity     int64
	UnitCost     decimal.Decimal
	ReorderPoint int64
}

// Calculator calcula y compara fingerprints de items de inventario.
type Calculator struct{}

// NewCalculator crea el servicio.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate genera el digest hex MD5 de los campos de negocio.
// Cadena: SKU|Name|Quantity|UnitCost|ReorderPoint. Montos con 4 decimales fijos
// para que 10.5 y 10.50 produzcan la misma cadena.
func (c *Calculator) Calculate(f Fields) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(f.SKU))
	b.WriteString(sep)
	b.WriteString(strings.TrimSpace(f.Name))
	b.WriteString(sep)
	b.WriteString(strconv.FormatInt(f.Quantity, 10))
	b.WriteString(sep)
	b.WriteString(f.UnitCost.StringFixed(4))
	b.WriteString(sep)
	b.WriteString(strconv.FormatInt(f.ReorderPoint, 10))

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// HasChanged indica si el item debe persistirse: true si no hay fingerprint previo
// (SKU nuevo) o si el digest recalculado difiere del almacenado.
func (c *Calculator) HasChanged(f Fields, previous string) bool {
	if previous == "" {
		return true
	}
	return c.Calculate(f) != previous
}
