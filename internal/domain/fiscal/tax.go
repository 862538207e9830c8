// Package fiscal implementa el cálculo de impuestos de la facturación venezolana:
// bases imponibles por línea, IVA por alícuota (G/R/A/E/NS), IGTF 3% sobre pagos
// en divisa y totales de factura en bolívares con equivalente en divisa según la
// tasa oficial BCV del día.
//
// Todo el paquete es puro: sin I/O, sin estado compartido, invocable de forma
// concurrente. Los montos se manejan con decimal.Decimal de punta a punta; el
// redondeo a 2 decimales ocurre por línea y por pago, y los totales son la suma
// exacta de los valores redondeados, de modo que
// TotalPagar = Subtotal + TotalIVA + TotalIGTF se cumple sin epsilon.
package fiscal

import "github.com/shopspring/decimal"

// CodigoIVA identifica la categoría estatutaria de IVA de un ítem.
type CodigoIVA string

// Alícuotas de IVA vigentes (Ley de IVA, Providencia SENIAT).
const (
	IVAGeneral   CodigoIVA = "G"  // Alícuota general (16%)
	IVAReducida  CodigoIVA = "R"  // Alícuota reducida (8%)
	IVAAdicional CodigoIVA = "A"  // Alícuota general + adicional suntuario (31%)
	IVAExento    CodigoIVA = "E"  // Exento (0%)
	IVANoSujeto  CodigoIVA = "NS" // No sujeto (0%)
)

// OrdenCodigosIVA es el orden fijo en que se emiten los subtotales por código.
// Los cinco códigos se emiten siempre, con ceros si no hubo actividad.
var OrdenCodigosIVA = [5]CodigoIVA{IVAGeneral, IVAReducida, IVAAdicional, IVAExento, IVANoSujeto}

// AlicuotaPorCodigo devuelve la alícuota porcentual por defecto de un código IVA.
func AlicuotaPorCodigo(c CodigoIVA) decimal.Decimal {
	switch c {
	case IVAGeneral:
		return decimal.NewFromInt(16)
	case IVAReducida:
		return decimal.NewFromInt(8)
	case IVAAdicional:
		return decimal.NewFromInt(31)
	default:
		return decimal.Zero
	}
}

// MetodoPago identifica el método con que se paga una factura.
type MetodoPago string

const (
	MetodoTransferencia  MetodoPago = "transferencia"   // Transferencia en bolívares
	MetodoPagoMovil      MetodoPago = "pago_movil"      // Pago móvil interbancario (Bs)
	MetodoTarjeta        MetodoPago = "tarjeta"         // Tarjeta de débito/crédito (Bs)
	MetodoEfectivoBs     MetodoPago = "efectivo_bs"     // Efectivo en bolívares
	MetodoEfectivoDivisa MetodoPago = "efectivo_divisa" // Efectivo en moneda extranjera
	MetodoZelle          MetodoPago = "zelle"           // Transferencia/app en divisa (Zelle y similares)
	MetodoMixto          MetodoPago = "mixto"           // Pago mixto Bs + divisa
)

// aplicaIGTF marca los métodos sujetos a IGTF: pagos en divisa o no bancarizados
// en el sistema financiero nacional (Ley IGTF, alícuota sobre pagos en moneda
// extranjera). Un método desconocido no aplica.
var aplicaIGTF = map[MetodoPago]bool{
	MetodoEfectivoDivisa: true,
	MetodoZelle:          true,
}

// Linea es una línea de factura como la consume el calculador.
type Linea struct {
	Codigo         string
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal // en bolívares
	DescuentoPct   decimal.Decimal // 0..100
	CodigoIVA      CodigoIVA
	Alicuota       decimal.Decimal // porcentaje; si es cero y el código grava, usar AlicuotaPorCodigo
}

// TotalesLinea resultado del cálculo de una línea.
type TotalesLinea struct {
	BaseImponible decimal.Decimal
	MontoIVA      decimal.Decimal
}

// Pago es una entrada de pago de la factura.
type Pago struct {
	Metodo      MetodoPago
	Monto       decimal.Decimal // en bolívares
	MontoDivisa decimal.Decimal // opcional, monto de referencia en divisa
}

// ResultadoIGTF clasificación IGTF de un pago.
type ResultadoIGTF struct {
	Aplica bool
	Monto  decimal.Decimal
}

// Totales agregados de la factura.
type Totales struct {
	Subtotal          decimal.Decimal // suma de bases imponibles
	TotalIVA          decimal.Decimal
	TotalIGTF         decimal.Decimal
	TotalPagar        decimal.Decimal // Subtotal + TotalIVA + TotalIGTF
	EquivalenteDivisa decimal.Decimal // TotalPagar / tasa BCV
}

// Config parámetros del calculador. La alícuota IGTF es configurable porque
// se fija por decreto y puede cambiar sin redeploy del catálogo de ítems.
type Config struct {
	TasaIGTF decimal.Decimal // porcentaje; 3 por defecto
}

// Calculadora calcula bases, IVA, IGTF y totales. Estado inmutable tras construcción.
type Calculadora struct {
	tasaIGTF decimal.Decimal
}

// NewCalculadora construye el calculador. TasaIGTF en cero usa el 3% legal.
func NewCalculadora(cfg Config) *Calculadora {
	tasa := cfg.TasaIGTF
	if tasa.IsZero() {
		tasa = decimal.NewFromInt(3)
	}
	return &Calculadora{tasaIGTF: tasa}
}

var cien = decimal.NewFromInt(100)

// TotalesLinea calcula base imponible e IVA de una línea:
// base = cantidad × precio × (1 − descuento/100), IVA = base × alícuota/100.
// El descuento se acota a [0,100]; la validación de cantidad y precio es
// responsabilidad del caller (capa HTTP).
func (c *Calculadora) TotalesLinea(l Linea) TotalesLinea {
	desc := l.DescuentoPct
	if desc.LessThan(decimal.Zero) {
		desc = decimal.Zero
	}
	if desc.GreaterThan(cien) {
		desc = cien
	}
	base := l.Cantidad.Mul(l.PrecioUnitario).
		Mul(cien.Sub(desc)).Div(cien).
		Round(2)

	alicuota := l.Alicuota
	if alicuota.IsZero() {
		alicuota = AlicuotaPorCodigo(l.CodigoIVA)
	}
	var iva decimal.Decimal
	if gravada(l.CodigoIVA) {
		iva = base.Mul(alicuota).Div(cien).Round(2)
	}
	return TotalesLinea{BaseImponible: base, MontoIVA: iva}
}

// IGTFPago clasifica un pago y calcula el IGTF correspondiente.
// Solo los métodos en divisa/no bancarizados generan IGTF; un método
// desconocido se trata como "no aplica" (clasificación estática, sin error).
func (c *Calculadora) IGTFPago(p Pago) ResultadoIGTF {
	if !aplicaIGTF[p.Metodo] {
		return ResultadoIGTF{Aplica: false, Monto: decimal.Zero}
	}
	monto := p.Monto.Mul(c.tasaIGTF).Div(cien).Round(2)
	return ResultadoIGTF{Aplica: true, Monto: monto}
}

// TotalesFactura agrega líneas y pagos en los totales de la factura.
// tasaBCV es la tasa oficial del día (Bs por unidad de divisa); si no es
// positiva retorna ErrTasaNoDisponible en lugar de dividir por cero: el caller
// debe bloquear la emisión hasta tener tasa.
func (c *Calculadora) TotalesFactura(lineas []Linea, pagos []Pago, tasaBCV decimal.Decimal) (Totales, error) {
	if !tasaBCV.GreaterThan(decimal.Zero) {
		return Totales{}, ErrTasaNoDisponible
	}
	var t Totales
	for _, l := range lineas {
		tl := c.TotalesLinea(l)
		t.Subtotal = t.Subtotal.Add(tl.BaseImponible)
		t.TotalIVA = t.TotalIVA.Add(tl.MontoIVA)
	}
	for _, p := range pagos {
		t.TotalIGTF = t.TotalIGTF.Add(c.IGTFPago(p).Monto)
	}
	t.TotalPagar = t.Subtotal.Add(t.TotalIVA).Add(t.TotalIGTF)
	t.EquivalenteDivisa = t.TotalPagar.Div(tasaBCV).Round(2)
	return t, nil
}

// epsilonPago tolerancia para considerar la factura completamente pagada.
var epsilonPago = decimal.NewFromFloat(0.01)

// PagoCompleto indica si la suma de pagos cubre el total a pagar dentro de la
// tolerancia de 0.01. Una diferencia mayor es un fallo de validación del caller,
// no de cálculo.
func PagoCompleto(pagos []Pago, totalPagar decimal.Decimal) bool {
	var suma decimal.Decimal
	for _, p := range pagos {
		suma = suma.Add(p.Monto)
	}
	return suma.Sub(totalPagar).Abs().LessThanOrEqual(epsilonPago)
}

// SubtotalImpuesto acumulado de base e impuesto para un código IVA.
type SubtotalImpuesto struct {
	Codigo   CodigoIVA
	Alicuota decimal.Decimal
	Base     decimal.Decimal
	Impuesto decimal.Decimal
}

// SubtotalesPorCodigo agrupa las líneas por código IVA y emite siempre los
// cinco códigos estatutarios en orden fijo (G, R, A, E, NS), con ceros para
// los códigos sin actividad. Líneas con código desconocido se acumulan en NS.
func (c *Calculadora) SubtotalesPorCodigo(lineas []Linea) []SubtotalImpuesto {
	acum := make(map[CodigoIVA]*SubtotalImpuesto, len(OrdenCodigosIVA))
	out := make([]SubtotalImpuesto, len(OrdenCodigosIVA))
	for i, cod := range OrdenCodigosIVA {
		out[i] = SubtotalImpuesto{Codigo: cod, Alicuota: AlicuotaPorCodigo(cod)}
		acum[cod] = &out[i]
	}
	for _, l := range lineas {
		tl := c.TotalesLinea(l)
		s, ok := acum[l.CodigoIVA]
		if !ok {
			s = acum[IVANoSujeto]
		}
		s.Base = s.Base.Add(tl.BaseImponible)
		s.Impuesto = s.Impuesto.Add(tl.MontoIVA)
	}
	return out
}

func gravada(c CodigoIVA) bool {
	switch c {
	case IVAExento, IVANoSujeto:
		return false
	default:
		return true
	}
}
