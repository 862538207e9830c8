package fiscal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MontoEnLetras convierte un monto no negativo a su representación en letras
// para la factura: parte entera en cardinales castellanos, palabra de moneda
// (singular para exactamente 1) y sufijo "CON xx/100" si hay céntimos.
//
//	0       → "CERO BOLÍVARES"
//	1       → "UN BOLÍVAR"
//	100     → "CIEN BOLÍVARES"
//	1234.56 → "UN MIL DOSCIENTOS TREINTA Y CUATRO BOLÍVARES CON 56/100"
//
// La recursión es por grupos de magnitud (unidades/miles/millones) sobre una
// frase numérica pura, sin manipular la palabra de moneda.
func MontoEnLetras(monto decimal.Decimal, moneda string) (string, error) {
	if monto.IsNegative() {
		return "", ErrMontoNegativo
	}
	monto = monto.Round(2)
	entero := monto.IntPart()
	centavos := monto.Sub(decimal.NewFromInt(entero)).Mul(cien).IntPart()

	frase := enLetras(entero)
	// "UN MILLÓN DE BOLÍVARES": el cardinal pide "DE" cuando la frase termina
	// en millón/millones, es decir, cuando el grupo de millones no deja resto.
	if entero >= 1_000_000 && entero%1_000_000 == 0 {
		frase += " DE"
	}
	frase += " " + palabraMoneda(moneda, entero == 1)
	if centavos > 0 {
		frase += fmt.Sprintf(" CON %02d/100", centavos)
	}
	return frase, nil
}

// palabraMoneda devuelve la palabra de moneda, en singular solo para 1.
// Monedas no catalogadas caen en bolívares (moneda de curso legal de la factura).
func palabraMoneda(moneda string, singular bool) string {
	switch moneda {
	case "USD":
		if singular {
			return "DÓLAR"
		}
		return "DÓLARES"
	case "EUR":
		if singular {
			return "EURO"
		}
		return "EUROS"
	default: // VES, Bs
		if singular {
			return "BOLÍVAR"
		}
		return "BOLÍVARES"
	}
}

var unidades = [10]string{"", "UN", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}

var especiales = map[int64]string{
	10: "DIEZ", 11: "ONCE", 12: "DOCE", 13: "TRECE", 14: "CATORCE",
	15: "QUINCE", 16: "DIECISÉIS", 17: "DIECISIETE", 18: "DIECIOCHO", 19: "DIECINUEVE",
	21: "VEINTIÚN", 22: "VEINTIDÓS", 23: "VEINTITRÉS", 24: "VEINTICUATRO",
	25: "VEINTICINCO", 26: "VEINTISÉIS", 27: "VEINTISIETE", 28: "VEINTIOCHO", 29: "VEINTINUEVE",
}

var decenasBase = map[int64]string{
	20: "VEINTE", 30: "TREINTA", 40: "CUARENTA", 50: "CINCUENTA",
	60: "SESENTA", 70: "SETENTA", 80: "OCHENTA", 90: "NOVENTA",
}

var centenasBase = map[int64]string{
	1: "CIENTO", 2: "DOSCIENTOS", 3: "TRESCIENTOS", 4: "CUATROCIENTOS", 5: "QUINIENTOS",
	6: "SEISCIENTOS", 7: "SETECIENTOS", 8: "OCHOCIENTOS", 9: "NOVECIENTOS",
}

// enLetras devuelve la frase cardinal de n (sin palabra de moneda).
func enLetras(n int64) string {
	switch {
	case n == 0:
		return "CERO"
	case n < 100:
		return decenas(n)
	case n < 1_000:
		return centenas(n)
	case n < 1_000_000:
		return miles(n)
	default:
		return millones(n)
	}
}

func decenas(n int64) string {
	if n < 10 {
		return unidades[n]
	}
	if s, ok := especiales[n]; ok {
		return s
	}
	d, u := (n/10)*10, n%10
	if u == 0 {
		return decenasBase[d]
	}
	// 31..99 no múltiplos de diez: conjunción "Y"
	return decenasBase[d] + " Y " + unidades[u]
}

func centenas(n int64) string {
	if n == 100 {
		return "CIEN"
	}
	c, resto := n/100, n%100
	if resto == 0 {
		return centenasBase[c]
	}
	return centenasBase[c] + " " + decenas(resto)
}

func miles(n int64) string {
	m, resto := n/1_000, n%1_000
	frase := enLetras(m) + " MIL"
	if resto > 0 {
		frase += " " + enLetras(resto)
	}
	return frase
}

func millones(n int64) string {
	m, resto := n/1_000_000, n%1_000_000
	var frase string
	if m == 1 {
		frase = "UN MILLÓN"
	} else {
		frase = enLetras(m) + " MILLONES"
	}
	if resto > 0 {
		frase += " " + enLetras(resto)
	}
	return frase
}
