package extraction

// DosageExtraction es el resultado transitorio de leer una etiqueta de
// medicamento: el cliente lo confirma/edita y recién ahí crea el medicamento.
// No se persiste nada de esto.
type DosageExtraction struct {
	Name       string
	DosageText string

	Frequency int // tomas por día; 0 = no se pudo leer
	Quantity  int // unidades totales despachadas; 0 = no se pudo leer

	// Days: duración del tratamiento. Si la etiqueta no lo trae explícito se
	// infiere de quantity/frequency/dosage; 0 = desconocido (el caller decide
	// si pregunta al usuario o deja el curso sin límite).
	Days         int
	DaysInferred bool

	Instructions string
}
