package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturave/facturave-api/internal/domain/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// MontoEnLetras es el texto legal que se imprime en la factura; un error aquí
// es un defecto fiscal, no cosmético. Los casos cubren los bordes clásicos del
// cardinal castellano: cero, cien exacto, teens, decenas exactas, conjunción
// "Y", apócope de veintiún, "UN MIL", la pluralización MILLÓN/MILLONES y el
// conector "DE" de los millones exactos.
// ──────────────────────────────────────────────────────────────────────────────

func TestMontoEnLetras_CasosBolivares(t *testing.T) {
	casos := []struct {
		nombre   string
		monto    string
		esperado string
	}{
		{"cero", "0", "CERO BOLÍVARES"},
		{"uno singular", "1", "UN BOLÍVAR"},
		{"uno con centavos", "1.50", "UN BOLÍVAR CON 50/100"},
		{"dos", "2", "DOS BOLÍVARES"},
		{"diez", "10", "DIEZ BOLÍVARES"},
		{"teen once", "11", "ONCE BOLÍVARES"},
		{"teen dieciseis", "16", "DIECISÉIS BOLÍVARES"},
		{"veinte exacto", "20", "VEINTE BOLÍVARES"},
		{"veintiun apocope", "21", "VEINTIÚN BOLÍVARES"},
		{"veintidos", "22", "VEINTIDÓS BOLÍVARES"},
		{"treinta exacto", "30", "TREINTA BOLÍVARES"},
		{"conjuncion y", "45", "CUARENTA Y CINCO BOLÍVARES"},
		{"cien exacto", "100", "CIEN BOLÍVARES"},
		{"ciento uno", "101", "CIENTO UN BOLÍVARES"},
		{"quinientos", "500", "QUINIENTOS BOLÍVARES"},
		{"setecientos trece", "713", "SETECIENTOS TRECE BOLÍVARES"},
		{"novecientos noventa y nueve", "999", "NOVECIENTOS NOVENTA Y NUEVE BOLÍVARES"},
		{"un mil", "1000", "UN MIL BOLÍVARES"},
		{"un mil doscientos treinta y cuatro con centavos", "1234.56", "UN MIL DOSCIENTOS TREINTA Y CUATRO BOLÍVARES CON 56/100"},
		{"dieciseis mil", "16000", "DIECISÉIS MIL BOLÍVARES"},
		{"cien mil", "100000", "CIEN MIL BOLÍVARES"},
		{"ciento dieciseis mil", "116000", "CIENTO DIECISÉIS MIL BOLÍVARES"},
		{"un millon exacto lleva de", "1000000", "UN MILLÓN DE BOLÍVARES"},
		{"dos millones exactos llevan de", "2000000", "DOS MILLONES DE BOLÍVARES"},
		{"millones con resto no llevan de", "2000350.07", "DOS MILLONES TRESCIENTOS CINCUENTA BOLÍVARES CON 07/100"},
		{"un millon con centavos conserva el de", "1000000.25", "UN MILLÓN DE BOLÍVARES CON 25/100"},
		{"un mil millones exactos llevan de", "1000000000", "UN MIL MILLONES DE BOLÍVARES"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			monto, err := decimal.NewFromString(c.monto)
			require.NoError(t, err)

			letras, err := fiscal.MontoEnLetras(monto, "VES")
			require.NoError(t, err)
			assert.Equal(t, c.esperado, letras)
		})
	}
}

// El sufijo de moneda debe seguir al código: dólares para facturas en USD,
// con el mismo tratamiento singular/plural.
func TestMontoEnLetras_MonedaDolares(t *testing.T) {
	letras, err := fiscal.MontoEnLetras(decimal.NewFromInt(1), "USD")
	require.NoError(t, err)
	assert.Equal(t, "UN DÓLAR", letras)

	letras, err = fiscal.MontoEnLetras(decimal.NewFromFloat(250.25), "USD")
	require.NoError(t, err)
	assert.Equal(t, "DOSCIENTOS CINCUENTA DÓLARES CON 25/100", letras)
}

// Una moneda no catalogada cae en bolívares: la factura siempre se expresa
// en moneda de curso legal.
func TestMontoEnLetras_MonedaDesconocidaUsaBolivares(t *testing.T) {
	letras, err := fiscal.MontoEnLetras(decimal.NewFromInt(5), "XXX")
	require.NoError(t, err)
	assert.Equal(t, "CINCO BOLÍVARES", letras)
}

// Montos negativos no tienen representación en letras: error explícito.
func TestMontoEnLetras_NegativoRetornaError(t *testing.T) {
	_, err := fiscal.MontoEnLetras(decimal.NewFromInt(-1), "VES")
	assert.ErrorIs(t, err, fiscal.ErrMontoNegativo)
}

// El redondeo a 2 decimales ocurre antes de separar céntimos: 0.995 → 1.00.
func TestMontoEnLetras_RedondeaAntesDeSeparar(t *testing.T) {
	letras, err := fiscal.MontoEnLetras(decimal.NewFromFloat(0.995), "VES")
	require.NoError(t, err)
	assert.Equal(t, "UN BOLÍVAR", letras)
}
