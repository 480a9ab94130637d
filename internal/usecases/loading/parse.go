package loading

import (
	"bytes"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"golang.org/x/text/encoding/korean"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Formatos aceitos para a coluna de mês. Não há formatos sem ano nem apenas de hora,
// para que o resultado não dependa da data atual.
var monthFormats = []string{
	"2006-1",
	"2006-1-2",
	"2006/1",
	"2006/1/2",
	"2006.1",
	"2006.1.2",
	"20060102",
	"2006-1-2 15:4",
	"2006-1-2 15:4:5",
	"2006/1/2 15:4:5",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"1/2/2006",
	"Jan 2006",
	"January 2006",
	"Jan-2006",
	"Jan 2, 2006",
	"2006",
}

var monthParser = &now.Config{
	WeekStartDay: time.Monday,
	TimeLocation: time.UTC,
	TimeFormats:  monthFormats,
}

// Valores tratados como célula ausente, os mesmos reconhecidos pelo pandas
var naValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

func isNA(s string) bool {
	for _, na := range naValues {
		if s == na {
			return true
		}
	}
	return false
}

// parseMonth converte a célula de mês em data. Retorna false quando não for possível.
func parseMonth(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if isNA(s) {
		return time.Time{}, false
	}

	t, err := monthParser.Parse(s)
	if err != nil {
		return time.Time{}, false
	}
	// mantém a data local do texto; converter o offset para UTC pode mudar o mês
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
}

// parseAmount converte uma célula numérica; valores inválidos viram ausentes
func parseAmount(raw string) domain.Amount {
	s := strings.TrimSpace(raw)
	if isNA(s) {
		return domain.MissingAmount
	}

	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) {
		return domain.MissingAmount
	}
	return domain.NewAmount(v)
}

// normalizeEncoding remove o BOM e converte arquivos EUC-KR/CP949 (exportados pelo Excel coreano) para UTF-8
func normalizeEncoding(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw, nil
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableInput, "codificação do arquivo não reconhecida")
	}
	return decoded, nil
}
