package loading

import "errors"

var (
	// ErrUnreadableInput o arquivo não pôde ser lido como CSV (vazio, sem linhas de dados ou mal formado)
	ErrUnreadableInput = errors.New("arquivo CSV ilegível")
	// ErrInputTooLarge o arquivo excede o limite de tamanho configurado
	ErrInputTooLarge = errors.New("arquivo CSV excede o tamanho máximo permitido")
)

// MissingColumnsWarning é o aviso exibido quando o CSV não possui as colunas obrigatórias
const MissingColumnsWarning = "CSV에 필요한 컬럼이 없습니다. 예시 데이터로 표시합니다."
