package domain

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
)

// Amount é um valor numérico que pode estar ausente (célula vazia ou inválida na planilha).
// Segue o mesmo formato de sql.NullFloat64, mas serializa como número ou null.
type Amount struct {
	Float64 float64
	Valid   bool
}

// NewAmount cria um Amount presente
func NewAmount(v float64) Amount {
	return Amount{Float64: v, Valid: true}
}

// MissingAmount representa uma célula ausente
var MissingAmount = Amount{}

// Or retorna o valor ou o fallback quando ausente
func (a Amount) Or(fallback float64) float64 {
	if !a.Valid {
		return fallback
	}
	return a.Float64
}

func (a Amount) String() string {
	if !a.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(a.Float64, 'f', -1, 64)
}

// MarshalJSON serializa valores ausentes (e não finitos) como null
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid || math.IsNaN(a.Float64) || math.IsInf(a.Float64, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(a.Float64, 'f', -1, 64)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*a = MissingAmount
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("amount: valor inválido %q: %w", s, err)
	}
	*a = NewAmount(v)
	return nil
}

// Scan implementa sql.Scanner
func (a *Amount) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*a = MissingAmount
	case float64:
		*a = NewAmount(v)
	case int64:
		*a = NewAmount(float64(v))
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("amount: erro ao converter %q: %w", v, err)
		}
		*a = NewAmount(f)
	default:
		return fmt.Errorf("amount: tipo não suportado %T", value)
	}
	return nil
}

// Value implementa driver.Valuer
func (a Amount) Value() (driver.Value, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Float64, nil
}
