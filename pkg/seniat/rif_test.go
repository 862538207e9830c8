package seniat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturave/facturave-api/pkg/seniat"
)

// Vectores calculados a mano con el módulo 11 del RIF:
// suma = valorLetra×4 + Σ dígito×peso, dv = 11 − (suma mod 11), dv ≥ 10 → 0.
func TestValidateRIF_Validos(t *testing.T) {
	casos := []string{
		"J-30816256-6",
		"J308162566",
		"j-30816256-6", // minúscula y guiones son equivalentes
		"V-12345678-1",
		"V 12345678 1",
		"J-00000005-0", // caso dv = 11 → 0
	}
	for _, rif := range casos {
		t.Run(rif, func(t *testing.T) {
			assert.NoError(t, seniat.ValidateRIF(rif))
		})
	}
}

func TestValidateRIF_DigitoIncorrecto(t *testing.T) {
	err := seniat.ValidateRIF("J-30816256-7")
	assert.Error(t, err, "dígito verificador alterado debe fallar")
}

func TestValidateRIF_FormatoInvalido(t *testing.T) {
	casos := []struct {
		nombre string
		rif    string
	}{
		{"vacío", ""},
		{"letra desconocida", "X-12345678-1"},
		{"faltan dígitos", "J-1234-5"},
		{"carácter extraño", "J-3081625A-6"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Error(t, seniat.ValidateRIF(c.rif))
		})
	}
}

func TestComputeRIFCheckDigit(t *testing.T) {
	dv, err := seniat.ComputeRIFCheckDigit("J-30816256")
	require.NoError(t, err)
	assert.Equal(t, byte('6'), dv)

	dv, err = seniat.ComputeRIFCheckDigit("V-12345678")
	require.NoError(t, err)
	assert.Equal(t, byte('1'), dv)
}

// El mapeo de formas de pago cubre todos los métodos internos; los no
// catalogados caen en el código por defecto sin fallar.
func TestFormaPagoDe_Fallback(t *testing.T) {
	fp, ok := seniat.FormaPagoDe("transferencia")
	assert.True(t, ok)
	assert.Equal(t, "03", fp.Codigo)

	fp, ok = seniat.FormaPagoDe("trueque")
	assert.False(t, ok)
	assert.Equal(t, seniat.FormaPagoPorDefecto, fp)
}
