package form

// Messages shown to the user. They are fixed Spanish strings; the page
// markup and the backend use the same language.
const (
	MsgRequired         = "Este campo es obligatorio"
	MsgNotANumber       = "Debe ser un número válido"
	MsgNotPositive      = "El valor debe ser mayor que cero"
	MsgResistanceRange  = "La resistencia debe estar entre 0.1Ω y 1000Ω"
	MsgVoltageRange     = "El voltaje debe estar entre 1V y 500V"
	MsgFormHasErrors    = "Por favor, corrige los errores en el formulario antes de continuar."
	MsgExampleFailed    = "No se pudo cargar el ejemplo."
	MsgResultsCopied    = "Resultados copiados al portapapeles"
	MsgCalculating      = "⟳ Calculando..."
	HintResistance      = "Resistencia en Ohmios (Ω). Representa la oposición al flujo de corriente."
	HintVoltage         = "Voltaje en Voltios (V). Representa la diferencia de potencial eléctrico."
	ResultsClipboardHdr = "Resultados de simulación de mallas:"
)

// Accepted ranges, inclusive on both ends.
const (
	MinResistance = 0.1
	MaxResistance = 1000.0
	MinVoltage    = 1.0
	MaxVoltage    = 500.0
)
