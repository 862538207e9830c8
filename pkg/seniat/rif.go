package seniat

import (
	"fmt"
	"strings"
	"unicode"
)

// Valores por tipo de contribuyente para el dígito verificador del RIF.
var rifLetterValues = map[byte]int{
	'V': 1, // persona natural venezolana
	'E': 2, // extranjero
	'J': 3, // persona jurídica
	'P': 4, // pasaporte
	'G': 5, // entidad gubernamental
	'C': 3, // comuna/consejo comunal (mismo peso que J)
}

// pesos aplicados a los 8 dígitos del RIF, de izquierda a derecha.
var rifWeights = [8]int{3, 2, 7, 6, 5, 4, 3, 2}

// ValidateRIF valida el formato y el dígito verificador de un RIF venezolano.
// Acepta "J-12345678-9", "J123456789" o con espacios/puntos intercalados.
// Algoritmo módulo 11: suma = valorLetra×4 + Σ dígito×peso; dv = 11 − (suma mod 11),
// con dv ≥ 10 → 0.
func ValidateRIF(rif string) error {
	letter, digits, err := splitRIF(rif)
	if err != nil {
		return err
	}
	if len(digits) != 9 {
		return fmt.Errorf("seniat: RIF debe tener 8 dígitos más dígito verificador, se encontraron %d", len(digits))
	}
	expected := computeRIFCheckDigit(letter, digits[:8])
	if digits[8] != expected {
		return fmt.Errorf("seniat: dígito verificador del RIF inválido: esperado %c, recibido %c", expected, digits[8])
	}
	return nil
}

// ComputeRIFCheckDigit calcula el dígito verificador para un RIF de 8 dígitos
// (con o sin dígito verificador ya incluido). Útil para completar el RIF antes
// de enviarlo al proveedor de timbrado.
func ComputeRIFCheckDigit(rif string) (byte, error) {
	letter, digits, err := splitRIF(rif)
	if err != nil {
		return 0, err
	}
	if len(digits) < 8 {
		return 0, fmt.Errorf("seniat: se requieren 8 dígitos para calcular el dígito verificador, se encontraron %d", len(digits))
	}
	return computeRIFCheckDigit(letter, digits[:8]), nil
}

func computeRIFCheckDigit(letter byte, digits []byte) byte {
	sum := rifLetterValues[letter] * 4
	for i, d := range digits {
		sum += int(d-'0') * rifWeights[i]
	}
	dv := 11 - sum%11
	if dv >= 10 {
		dv = 0
	}
	return byte('0' + dv)
}

// splitRIF separa la letra de tipo y los dígitos, ignorando guiones, puntos y espacios.
func splitRIF(rif string) (byte, []byte, error) {
	s := strings.ToUpper(strings.TrimSpace(rif))
	if s == "" {
		return 0, nil, fmt.Errorf("seniat: RIF vacío")
	}
	letter := s[0]
	if _, ok := rifLetterValues[letter]; !ok {
		return 0, nil, fmt.Errorf("seniat: tipo de RIF desconocido %q (esperado V, E, J, P, G o C)", string(letter))
	}
	var digits []byte
	for _, r := range s[1:] {
		switch {
		case unicode.IsDigit(r):
			digits = append(digits, byte(r))
		case r == '-' || r == '.' || r == ' ':
			// separadores permitidos
		default:
			return 0, nil, fmt.Errorf("seniat: carácter inválido %q en el RIF", r)
		}
	}
	return letter, digits, nil
}
